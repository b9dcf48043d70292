package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"
)

// NotificationService handles all push notification logic
type NotificationService struct{}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for notifications
type NotificationData struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	BookingID string `json:"bookingId,omitempty"`
	BranchID  string `json:"branchId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Screen    string `json:"screen"` // target screen to navigate to
	Params    string `json:"params"` // JSON string of navigation parameters
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendNotificationToUser sends a notification to a specific user
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Failed to get push tokens for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":      data.Type,
		"id":        data.ID,
		"bookingId": data.BookingID,
		"branchId":  data.BranchID,
		"userId":    data.UserID,
		"screen":    data.Screen,
		"params":    data.Params,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}

	return lastError
}

// SendBookingStatusNotification records an in-app notification and pushes it
// to the client when a booking changes status.
func (ns *NotificationService) SendBookingStatusNotification(booking models.Booking, serviceName string) {
	var title, body string
	switch booking.Status {
	case models.BookingStatusConfirmed:
		title = "Booking Confirmed ✅"
		body = fmt.Sprintf("Your %s appointment on %s is confirmed.", serviceName, booking.StartAt.Format("January 2, 2006 15:04"))
	case models.BookingStatusCompleted:
		title = "Thanks for your visit!"
		body = fmt.Sprintf("Your %s appointment is complete. See you next time!", serviceName)
	case models.BookingStatusCancelled:
		title = "Booking Cancelled"
		body = fmt.Sprintf("Your %s appointment on %s was cancelled.", serviceName, booking.StartAt.Format("January 2, 2006 15:04"))
	default:
		return
	}

	notification := models.Notification{
		UserID:  booking.ClientID,
		Type:    "booking_" + booking.Status,
		Title:   title,
		Message: body,
		RefType: "booking",
		RefID:   booking.ID,
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to record booking notification: %v", err)
	}

	params := fmt.Sprintf(`{"bookingId": %d}`, booking.ID)
	data := NotificationData{
		Type:      notification.Type,
		ID:        fmt.Sprintf("%d", booking.ID),
		BookingID: fmt.Sprintf("%d", booking.ID),
		BranchID:  fmt.Sprintf("%d", booking.BranchID),
		UserID:    fmt.Sprintf("%d", booking.ClientID),
		Screen:    "BookingDetails",
		Params:    params,
	}

	if err := ns.SendNotificationToUser(booking.ClientID, title, body, data); err != nil {
		log.Printf("Failed to push booking notification to user %d: %v", booking.ClientID, err)
	}
}

// SendNewBookingNotificationToManagers alerts branch managers about a fresh
// pending booking so it can be confirmed from the dashboard.
func (ns *NotificationService) SendNewBookingNotificationToManagers(booking models.Booking, clientName, serviceName string) {
	var managers []models.User
	if err := storage.DB.
		Joins("JOIN staff_members ON staff_members.user_id = users.id").
		Where("staff_members.branch_id = ? AND users.role IN ?", booking.BranchID, []string{"manager", "admin"}).
		Find(&managers).Error; err != nil {
		log.Printf("Failed to load managers for branch %d: %v", booking.BranchID, err)
		return
	}

	title := "New Booking Request 💇"
	body := fmt.Sprintf("%s requested %s on %s", clientName, serviceName, booking.StartAt.Format("Jan 2, 15:04"))
	params := fmt.Sprintf(`{"bookingId": %d, "branchId": %d}`, booking.ID, booking.BranchID)

	for _, manager := range managers {
		data := NotificationData{
			Type:      "booking_requested",
			ID:        fmt.Sprintf("%d", booking.ID),
			BookingID: fmt.Sprintf("%d", booking.ID),
			BranchID:  fmt.Sprintf("%d", booking.BranchID),
			UserID:    fmt.Sprintf("%d", manager.ID),
			Screen:    "AdminBookings",
			Params:    params,
		}
		if err := ns.SendNotificationToUser(manager.ID, title, body, data); err != nil {
			log.Printf("Failed to notify manager %d: %v", manager.ID, err)
		}
	}
}
