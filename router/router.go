package router

import (
	"net/http"
	"os"
	"path/filepath"

	"bookxchange/controllers"
	"bookxchange/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	bookCtrl := controllers.NewBookController(db)
	exchangeCtrl := controllers.NewExchangeController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      STATIC PAGES
	// ----------------------------------------------------------------
	workDir, _ := os.Getwd()
	webPath := filepath.Join(workDir, "web")

	if _, err := os.Stat(webPath); err == nil {
		r.Static("/assets", filepath.Join(webPath, "assets"))

		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/dashboard")
		})
		r.GET("/login", func(c *gin.Context) {
			c.File(filepath.Join(webPath, "login.html"))
		})
		r.GET("/register", func(c *gin.Context) {
			c.File(filepath.Join(webPath, "register.html"))
		})
		// Gating dashboard terjadi di client: API membalas 401 dan
		// halaman redirect sendiri ke /login
		r.GET("/dashboard", func(c *gin.Context) {
			c.File(filepath.Join(webPath, "dashboard.html"))
		})
	}

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// BOOK REGISTRY
	auth.GET("/books/mine", bookCtrl.GetMyBooks)
	auth.GET("/books/available", bookCtrl.GetAvailableBooks)
	auth.GET("/books/taken", bookCtrl.GetTakenBooks)
	auth.POST("/books", bookCtrl.CreateBook)

	// EXCHANGE WORKFLOW
	auth.POST("/books/:book_id/request", exchangeCtrl.RequestBook)
	auth.POST("/books/:book_id/return", exchangeCtrl.ReturnBook)
	auth.POST("/notifications/:notif_id/approve", exchangeCtrl.ApproveRequest)
	auth.POST("/notifications/:notif_id/reject", exchangeCtrl.RejectRequest)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.GET("/notifications/actionable", notificationCtrl.GetActionableNotifications)

	// WebSocket feed dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.ExchangeFeedHandler)
	}

	return r
}
