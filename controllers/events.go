package controllers

import (
	"time"

	"bookxchange/models"
	"bookxchange/utils"

	"gorm.io/gorm"
)

// recordEvent menulis baris change-feed untuk ExchangeMonitor. Gagal
// menulis event tidak menggagalkan operasi utamanya, cukup di-log.
func recordEvent(db *gorm.DB, collection string, recordID uint, action string, audienceID *uint) {
	event := models.ExchangeEvent{
		Collection: collection,
		RecordID:   recordID,
		ActionType: action,
		AudienceID: audienceID,
		ChangedAt:  time.Now(),
	}

	if err := db.Create(&event).Error; err != nil {
		utils.ErrorLogger.Printf("Error recording exchange event: %v", err)
	}
}
