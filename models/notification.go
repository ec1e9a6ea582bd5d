package models

import "time"

// Status notifikasi exchange
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReturned = "returned"
)

// Notification menyimpan snapshot buku saat request dibuat, sehingga
// inbox owner tetap konsisten walaupun data buku berubah belakangan.
type Notification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerID        uint      `gorm:"not null;index" json:"owner_id"`
	RequesterID    uint      `gorm:"not null" json:"requester_id"`
	RequesterEmail string    `gorm:"type:varchar(255);not null" json:"requester_email"`
	BookID         uint      `gorm:"not null" json:"book_id"`
	BookName       string    `gorm:"type:varchar(255);not null" json:"book_name"`
	BookAuthor     string    `gorm:"type:varchar(255);not null" json:"book_author"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RequestedAt    time.Time `gorm:"not null" json:"requested_at"`
}
