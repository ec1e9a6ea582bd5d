package controllers

import (
	"net/http"
	"time"

	"bookxchange/models"
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExchangeController menangani lifecycle exchange:
// request (pending) -> approved | rejected, plus return.
type ExchangeController struct {
	DB *gorm.DB
}

func NewExchangeController(db *gorm.DB) *ExchangeController {
	return &ExchangeController{DB: db}
}

// RequestBook -> membuat notification pending untuk owner buku.
// Tidak ada guard terhadap request buku sendiri, buku yang sudah
// dipinjam, atau request ganda; owner yang memutuskan saat approve.
func (ec *ExchangeController) RequestBook(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var requester models.User
	if err := ec.DB.First(&requester, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	bookID := c.Param("book_id")
	var book models.Book
	if err := ec.DB.First(&book, bookID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Snapshot data buku pada saat request
	notification := models.Notification{
		OwnerID:        book.OwnerID,
		RequesterID:    requester.ID,
		RequesterEmail: requester.Email,
		BookID:         book.ID,
		BookName:       book.Name,
		BookAuthor:     book.Author,
		Status:         models.StatusPending,
		RequestedAt:    time.Now(),
	}

	if err := ec.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Error requesting book: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordEvent(ec.DB, "notifications", notification.ID, "INSERT", &book.OwnerID)

	utils.InfoLogger.Printf("Book request: user %d requested book %d from owner %d",
		requester.ID, book.ID, book.OwnerID)

	utils.RespondJSON(c, http.StatusCreated, "Book request sent", notification)
}

// ApproveRequest -> dua write terpisah: status notification lalu status
// buku. Sengaja tidak dibungkus transaction dan tidak membatalkan
// pending request lain untuk buku yang sama; approve terakhir menimpa
// issued_to (lihat test race di Controllers_test).
func (ec *ExchangeController) ApproveRequest(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notification models.Notification
	if err := ec.DB.First(&notification, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Write 1: notification -> approved
	if err := ec.DB.Model(&notification).Update("status", models.StatusApproved).Error; err != nil {
		utils.ErrorLogger.Printf("Error approving request %d: %v", notification.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Write 2: buku -> issued ke requester
	if err := ec.DB.Model(&models.Book{}).
		Where("id = ?", notification.BookID).
		Updates(map[string]interface{}{
			"available":       false,
			"issued_to":       notification.RequesterID,
			"issued_to_email": notification.RequesterEmail,
		}).Error; err != nil {
		// Notification sudah approved tapi buku belum berubah; tidak ada
		// compensating write, caller hanya tahu operasinya gagal.
		utils.ErrorLogger.Printf("Error issuing book %d: %v", notification.BookID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordEvent(ec.DB, "notifications", notification.ID, "UPDATE", &notification.OwnerID)
	recordEvent(ec.DB, "books", notification.BookID, "UPDATE", nil)

	utils.InfoLogger.Printf("Request %d approved: book %d issued to user %d",
		notification.ID, notification.BookID, notification.RequesterID)

	utils.RespondJSON(c, http.StatusOK, "Request approved", gin.H{
		"notif_id": notification.ID,
		"book_id":  notification.BookID,
	})
}

// RejectRequest -> satu write saja, buku tidak tersentuh
func (ec *ExchangeController) RejectRequest(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notification models.Notification
	if err := ec.DB.First(&notification, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ec.DB.Model(&notification).Update("status", models.StatusRejected).Error; err != nil {
		utils.ErrorLogger.Printf("Error rejecting request %d: %v", notification.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordEvent(ec.DB, "notifications", notification.ID, "UPDATE", &notification.OwnerID)

	utils.RespondJSON(c, http.StatusOK, "Request rejected", gin.H{
		"notif_id": notification.ID,
	})
}

// ReturnBook -> reset status buku dan buat notification "returned" baru
// untuk owner. Notification approved yang lama tidak diubah. Tidak ada
// pengecekan bahwa yang mengembalikan adalah pemegang buku.
func (ec *ExchangeController) ReturnBook(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	bookID := c.Param("book_id")
	var book models.Book
	if err := ec.DB.First(&book, bookID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Snapshot email pemegang sebelum di-reset
	requesterEmail := "-"
	if book.IssuedToEmail != nil {
		requesterEmail = *book.IssuedToEmail
	}

	// Write 1: buku kembali available
	if err := ec.DB.Model(&book).Updates(map[string]interface{}{
		"available":       true,
		"issued_to":       nil,
		"issued_to_email": nil,
	}).Error; err != nil {
		utils.ErrorLogger.Printf("Error returning book %d: %v", book.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Write 2: notification returned baru (bukan transisi dari yang lama)
	notification := models.Notification{
		OwnerID:        book.OwnerID,
		RequesterID:    userID,
		RequesterEmail: requesterEmail,
		BookID:         book.ID,
		BookName:       book.Name,
		BookAuthor:     book.Author,
		Status:         models.StatusReturned,
		RequestedAt:    time.Now(),
	}

	if err := ec.DB.Create(&notification).Error; err != nil {
		// Buku sudah available lagi tapi owner tidak mendapat notifikasi
		utils.ErrorLogger.Printf("Error creating return notification for book %d: %v", book.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordEvent(ec.DB, "books", book.ID, "UPDATE", nil)
	recordEvent(ec.DB, "notifications", notification.ID, "INSERT", &book.OwnerID)

	utils.InfoLogger.Printf("Book %d returned by user %d", book.ID, userID)

	utils.RespondJSON(c, http.StatusOK, "Book returned", gin.H{
		"book_id": book.ID,
	})
}
