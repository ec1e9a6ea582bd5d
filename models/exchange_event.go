package models

import "time"

// ExchangeEvent adalah baris change-feed yang ditulis controller setiap
// mutasi books/notifications. ExchangeMonitor mem-polling baris yang belum
// diproses dan menyiarkannya ke websocket hub.
type ExchangeEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Collection string    `gorm:"type:varchar(50);not null;index:idx_collection_action" json:"collection"`
	RecordID   uint      `gorm:"not null" json:"record_id"`
	ActionType string    `gorm:"type:varchar(20);not null;index:idx_collection_action" json:"action_type"`
	AudienceID *uint     `gorm:"index" json:"audience_id,omitempty"`
	ChangedAt  time.Time `gorm:"not null" json:"changed_at"`
	Processed  bool      `gorm:"default:false;index:idx_processed" json:"processed"`
}
