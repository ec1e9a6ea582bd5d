package services

import (
	"log"
	"time"

	"bookxchange/models"
	"bookxchange/realtime"

	"gorm.io/gorm"
)

// ExchangeMonitor mem-polling tabel exchange_events dan menyiarkan baris
// baru ke websocket hub, supaya dashboard yang terbuka tidak harus
// menunggu interval refresh 10 detik di sisi client.
type ExchangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewExchangeMonitor(db *gorm.DB) *ExchangeMonitor {
	return &ExchangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (em *ExchangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(em.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				em.checkEvents()
			case <-em.StopChan:
				return
			}
		}
	}()
}

func (em *ExchangeMonitor) Stop() {
	close(em.StopChan)
}

func (em *ExchangeMonitor) checkEvents() {
	var events []models.ExchangeEvent

	tx := em.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&events).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching exchange events: %v", err)
		return
	}

	for _, event := range events {
		switch event.Collection {
		case "books":
			realtime.BroadcastBookUpdate(event)
		case "notifications":
			if event.AudienceID != nil {
				realtime.BroadcastNotification(event, *event.AudienceID)
			}
		}

		if err := tx.Model(&models.ExchangeEvent{}).
			Where("id = ?", event.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking event as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}

	if len(events) > 0 {
		log.Printf("Broadcasted %d exchange events", len(events))
	}
}
