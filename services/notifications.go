package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
)

// NotificationService records in-app notifications for reservation
// lifecycle events and pushes them best-effort to the user's devices.
// Delivery failures are logged and swallowed; callers never see them.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

const expoPushURL = "https://exp.host/--/api/v2/push/send"

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

func (ns *NotificationService) sendPush(token, title, body string, data map[string]string) error {
	payload := map[string]interface{}{
		"to":    token,
		"title": title,
		"body":  body,
		"data":  data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	res, err := http.Post(expoPushURL, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", res.StatusCode)
	}
	return nil
}

// notify stores the in-app notification row and then pushes it to every
// registered device of the user.
func (ns *NotificationService) notify(userID uint, notifType, title, message string, refType string, refID uint) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to store notification for user %d: %v", userID, err)
	}

	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		return
	}

	data := map[string]string{
		"type": notifType,
		"id":   fmt.Sprintf("%d", refID),
	}
	for _, token := range tokens {
		if err := ns.sendPush(token, title, message, data); err != nil {
			log.Printf("failed to push notification to token %s: %v", token, err)
		}
	}
}

// SendReservationCreated notifies the client that their reservation and
// its invoice were recorded.
func (ns *NotificationService) SendReservationCreated(reservation *models.Reservation, property *models.Property) {
	message := fmt.Sprintf("Your reservation for %s from %s to %s is pending confirmation",
		property.Title,
		reservation.StartDate.Format("Jan 2, 2006"),
		reservation.EndDate.Format("Jan 2, 2006"))
	ns.notify(reservation.UserID, "reservation_created", "Reservation Received", message, "reservation", reservation.ID)
}

// SendReservationStatusChanged notifies the client about an admin status
// decision.
func (ns *NotificationService) SendReservationStatusChanged(reservation *models.Reservation, property *models.Property) {
	message := fmt.Sprintf("Your reservation for %s has been %s", property.Title, reservation.Status)
	ns.notify(reservation.UserID, "reservation_status", "Reservation Status Updated", message, "reservation", reservation.ID)
}

// SendModificationDecided notifies the client about the outcome of their
// date-change request.
func (ns *NotificationService) SendModificationDecided(reservation *models.Reservation, property *models.Property, decision string) {
	message := fmt.Sprintf("Your date change request for %s has been %s", property.Title, decision)
	ns.notify(reservation.UserID, "modification_decided", "Modification Request "+decision, message, "reservation", reservation.ID)
}
