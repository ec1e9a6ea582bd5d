package models

import "time"

// Book: available == false persis ketika issued_to terisi. Field
// available selalu diset saat insert supaya tidak ada record lama
// dengan nilai kosong yang harus ditebak di sisi baca.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Author        string    `gorm:"type:varchar(255);not null" json:"author"`
	ImageURL      string    `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Pages         int       `gorm:"not null" json:"pages"`
	Subject       string    `gorm:"type:varchar(255);not null" json:"subject"`
	Branch        string    `gorm:"type:varchar(20);not null" json:"branch"`
	Sem           int       `gorm:"not null" json:"sem"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	Owner         User      `gorm:"foreignKey:OwnerID" json:"-"`
	OwnerEmail    string    `gorm:"type:varchar(255);not null" json:"owner_email"`
	Available     bool      `gorm:"not null;default:true" json:"available"`
	IssuedTo      *uint     `gorm:"index" json:"issued_to,omitempty"`
	IssuedToEmail *string   `gorm:"type:varchar(255)" json:"issued_to_email,omitempty"`
	AddedAt       time.Time `gorm:"not null" json:"added_at"`
}
