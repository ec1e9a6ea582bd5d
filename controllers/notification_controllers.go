package controllers

import (
	"net/http"

	"bookxchange/models"
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications -> inbox owner: request pending plus pemberitahuan
// pengembalian. Approved/rejected tidak ditampilkan lagi di dropdown.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var notifs []models.Notification
	if err := nc.DB.
		Where("owner_id = ? AND status IN ?", userID, []string{models.StatusPending, models.StatusReturned}).
		Order("requested_at DESC").
		Find(&notifs).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching notifications: %v", err)
		notifs = []models.Notification{}
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetActionableNotifications -> hanya pending, dipakai untuk badge counter
func (nc *NotificationController) GetActionableNotifications(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var notifs []models.Notification
	if err := nc.DB.
		Where("owner_id = ? AND status = ?", userID, models.StatusPending).
		Order("requested_at DESC").
		Find(&notifs).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching actionable notifications: %v", err)
		notifs = []models.Notification{}
	}

	utils.RespondJSON(c, http.StatusOK, "Actionable notifications", notifs)
}
