package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"bookxchange/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, ownerID, requesterID uint, status string) models.Notification {
	notif := models.Notification{
		OwnerID:        ownerID,
		RequesterID:    requesterID,
		RequesterEmail: "requester@example.com",
		BookID:         1,
		BookName:       "Data Structures",
		BookAuthor:     "Seymour Lipschutz",
		Status:         status,
		RequestedAt:    time.Now(),
	}
	assert.NoError(t, db.Create(&notif).Error)
	return notif
}

// Inbox owner hanya memuat pending dan returned; approved/rejected
// tidak ditampilkan lagi
func TestGetNotificationsFiltersByStatus(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	requester := seedUser(t, db, "Requester", "requester@example.com")

	seedNotification(t, db, owner.ID, requester.ID, models.StatusPending)
	seedNotification(t, db, owner.ID, requester.ID, models.StatusReturned)
	seedNotification(t, db, owner.ID, requester.ID, models.StatusApproved)
	seedNotification(t, db, owner.ID, requester.ID, models.StatusRejected)

	w := doJSON(t, router, "GET", "/api/notifications", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	notifs := resp["data"].([]interface{})
	assert.Len(t, notifs, 2)
	for _, n := range notifs {
		status := n.(map[string]interface{})["status"].(string)
		assert.Contains(t, []string{models.StatusPending, models.StatusReturned}, status)
	}
}

// Badge counter hanya menghitung pending
func TestGetActionableNotifications(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	requester := seedUser(t, db, "Requester", "requester@example.com")

	seedNotification(t, db, owner.ID, requester.ID, models.StatusPending)
	seedNotification(t, db, owner.ID, requester.ID, models.StatusPending)
	seedNotification(t, db, owner.ID, requester.ID, models.StatusReturned)

	w := doJSON(t, router, "GET", "/api/notifications/actionable", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	notifs := resp["data"].([]interface{})
	assert.Len(t, notifs, 2)
	for _, n := range notifs {
		assert.Equal(t, models.StatusPending, n.(map[string]interface{})["status"])
	}
}

// Notifikasi dirutekan per owner; user lain tidak melihat inbox orang
func TestNotificationsScopedToOwner(t *testing.T) {
	db := setupTestDB()
	router := setupRouterForTest(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	other := seedUser(t, db, "Other", "other@example.com")

	seedNotification(t, db, owner.ID, other.ID, models.StatusPending)

	w := doJSON(t, router, "GET", "/api/notifications", tokenFor(t, other), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	notifs := resp["data"].([]interface{})
	assert.Len(t, notifs, 0)
}
