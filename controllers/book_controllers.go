package controllers

import (
	"net/http"
	"time"

	"bookxchange/models"
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

// GetMyBooks -> semua buku milik user yang login
func (bc *BookController) GetMyBooks(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var books []models.Book
	if err := bc.DB.Where("owner_id = ?", userID).Find(&books).Error; err != nil {
		// Listing gagal -> log, balas list kosong
		utils.ErrorLogger.Printf("Error fetching my books: %v", err)
		books = []models.Book{}
	}

	utils.RespondJSON(c, http.StatusOK, "My books", books)
}

// GetAvailableBooks -> buku yang bisa di-request: available dan bukan
// milik user sendiri
func (bc *BookController) GetAvailableBooks(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var books []models.Book
	if err := bc.DB.Where("available = ? AND owner_id != ?", true, userID).Find(&books).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching available books: %v", err)
		books = []models.Book{}
	}

	utils.RespondJSON(c, http.StatusOK, "Available books", books)
}

// GetTakenBooks -> buku orang lain yang sedang dipegang user ini
func (bc *BookController) GetTakenBooks(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var books []models.Book
	if err := bc.DB.Where("issued_to = ?", userID).Find(&books).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching taken books: %v", err)
		books = []models.Book{}
	}

	utils.RespondJSON(c, http.StatusOK, "Taken books", books)
}

// CreateBook -> menambahkan buku ke katalog, selalu available saat dibuat
func (bc *BookController) CreateBook(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type request struct {
		Name     string `json:"name" binding:"required"`
		Author   string `json:"author" binding:"required"`
		ImageURL string `json:"image_url"`
		Pages    int    `json:"pages" binding:"required"`
		Subject  string `json:"subject" binding:"required"`
		Branch   string `json:"branch" binding:"required"`
		Sem      int    `json:"sem" binding:"required,min=1,max=8"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Owner email diambil dari profil, bukan dari payload
	var owner models.User
	if err := bc.DB.First(&owner, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	book := models.Book{
		Name:       req.Name,
		Author:     req.Author,
		ImageURL:   req.ImageURL,
		Pages:      req.Pages,
		Subject:    req.Subject,
		Branch:     req.Branch,
		Sem:        req.Sem,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		Available:  true,
		AddedAt:    time.Now(),
	}

	if err := bc.DB.Create(&book).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordEvent(bc.DB, "books", book.ID, "INSERT", nil)

	utils.InfoLogger.Printf("Book added: %s by %s (owner=%d)", book.Name, book.Author, book.OwnerID)

	utils.RespondJSON(c, http.StatusCreated, "Book added", book)
}
