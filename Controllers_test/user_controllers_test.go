package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"bookxchange/controllers"
	"bookxchange/middlewares"
	"bookxchange/models"
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

var (
	testDBCounter   int64
	testUserCounter int64
)

// setupTestDB menggunakan SQLite in-memory untuk testing; nama database
// unik per pemanggilan supaya test tidak saling mengotori data.
func setupTestDB() *gorm.DB {
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Notification{},
		&models.ExchangeEvent{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// setupRouterForTest mengonfigurasi router dengan endpoint yang akan diuji,
// tanpa rate limiter supaya test bebas memanggil berulang kali
func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userCtrl := controllers.NewUserController(db)
	bookCtrl := controllers.NewBookController(db)
	exchangeCtrl := controllers.NewExchangeController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	api := router.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)
	api.POST("/logout", userCtrl.Logout)

	api.GET("/books/mine", bookCtrl.GetMyBooks)
	api.GET("/books/available", bookCtrl.GetAvailableBooks)
	api.GET("/books/taken", bookCtrl.GetTakenBooks)
	api.POST("/books", bookCtrl.CreateBook)

	api.POST("/books/:book_id/request", exchangeCtrl.RequestBook)
	api.POST("/books/:book_id/return", exchangeCtrl.ReturnBook)
	api.POST("/notifications/:notif_id/approve", exchangeCtrl.ApproveRequest)
	api.POST("/notifications/:notif_id/reject", exchangeCtrl.RejectRequest)

	api.GET("/notifications", notificationCtrl.GetNotifications)
	api.GET("/notifications/actionable", notificationCtrl.GetActionableNotifications)

	return router
}

// seedUser membuat user langsung di DB, untuk test yang tidak sedang
// menguji flow register
func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	// ID unik lintas test: token JWT hanya memuat user id, jadi dua user
	// dengan id sama di database berbeda akan menghasilkan token identik
	// dan blacklist logout bisa bocor antar test
	user := models.User{
		ID:       uint(atomic.AddInt64(&testUserCounter, 1)),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Sem:      3,
		Branch:   "CSE",
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	token, err := utils.GenerateToken(user.ID, "student")
	assert.NoError(t, err)
	return token
}

// doJSON mengirim request JSON dan merekam responsnya
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)

	// --- Register ---
	registerPayload := map[string]interface{}{
		"name":     "Test Student",
		"email":    "student@example.com",
		"password": "password123",
		"sem":      3,
		"branch":   "CSE",
	}
	w := doJSON(t, router, "POST", "/register", "", registerPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, true, resp["status"])
	data := resp["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// --- Login ---
	loginPayload := map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	}
	w = doJSON(t, router, "POST", "/login", "", loginPayload)
	assert.Equal(t, http.StatusOK, w.Code)

	resp = parseResponse(t, w)
	assert.Equal(t, true, resp["status"])
	data = resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "student@example.com", user["email"])
	assert.Equal(t, "CSE", user["branch"])
}

func TestRegisterRejectsInvalidBranch(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)

	payload := map[string]interface{}{
		"name":     "Test Student",
		"email":    "student2@example.com",
		"password": "password123",
		"sem":      3,
		"branch":   "KIMIA", // bukan kode branch yang dikenal
	}
	w := doJSON(t, router, "POST", "/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)
	seedUser(t, db, "Student A", "a@example.com")

	payload := map[string]string{
		"email":    "a@example.com",
		"password": "wrongpassword",
	}
	w := doJSON(t, router, "POST", "/login", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)

	w := doJSON(t, router, "GET", "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileAndLogout(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)
	user := seedUser(t, db, "Student A", "a@example.com")
	token := tokenFor(t, user)

	w := doJSON(t, router, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "a@example.com", data["email"])
	assert.Equal(t, float64(3), data["sem"])

	// Logout -> token masuk blacklist
	w = doJSON(t, router, "POST", "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Token yang sama tidak bisa dipakai lagi
	w = doJSON(t, router, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
