package models

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifReminder    NotificationType = "reminder"
	NotifAchievement NotificationType = "achievement"
	NotifAlert       NotificationType = "alert"
	NotifTip         NotificationType = "tip"
)

type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt int64            `json:"created_at" db:"created_at"`
}

type FCMToken struct {
	ID         int    `json:"id" db:"id"`
	UserID     string `json:"user_id" db:"user_id"`
	Token      string `json:"token" db:"token"`
	DeviceType string `json:"device_type" db:"device_type"` // "ios" or "android"
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
}

// RegisterFCMTokenRequest is the request body for POST /api/fcm-token
type RegisterFCMTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}
