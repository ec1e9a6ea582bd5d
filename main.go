package main

import (
	"os"
	"time"

	"bookxchange/config"
	"bookxchange/middlewares"
	"bookxchange/models"
	"bookxchange/router"
	"bookxchange/services"
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		// .env opsional; environment variable langsung juga didukung
		os.Stderr.WriteString("Warning: .env file not found\n")
	}

	utils.InitLogger()

	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai lintas package
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Rate limiter global (50 requests per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Monitor change-feed dengan interval pendek supaya dashboard yang
	// terbuka cepat melihat mutasi dari user lain
	monitor := services.NewExchangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	// Bersihkan blacklist token secara periodik
	go utils.CleanupBlacklist()

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start server: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Notification{},
		&models.ExchangeEvent{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
}
