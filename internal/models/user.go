package models

type User struct {
	ID                   string `json:"id" db:"id"`
	Email                string `json:"email" db:"email"`
	Password             string `json:"-" db:"password"` // Never return password in JSON
	Name                 string `json:"name" db:"name"`
	Role                 string `json:"role" db:"role"` // "resident" or "admin"
	Mode                 string `json:"mode" db:"mode"` // "adult" or "child"
	TotalPoints          int    `json:"total_points" db:"total_points"`
	Level                int    `json:"level" db:"level"`
	NotificationsEnabled bool   `json:"notifications_enabled" db:"notifications_enabled"`
	Theme                string `json:"theme" db:"theme"` // "light" or "dark"
	CreatedAt            int64  `json:"created_at" db:"created_at"`
	UpdatedAt            int64  `json:"updated_at" db:"updated_at"`
}

const (
	RoleResident = "resident"
	RoleAdmin    = "admin"

	ModeAdult = "adult"
	ModeChild = "child"
)

type UserResponse struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Mode                 string `json:"mode"`
	TotalPoints          int    `json:"total_points"`
	Level                int    `json:"level"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Theme                string `json:"theme"`
	CreatedAt            int64  `json:"created_at"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 u.Role,
		Mode:                 u.Mode,
		TotalPoints:          u.TotalPoints,
		Level:                u.Level,
		NotificationsEnabled: u.NotificationsEnabled,
		Theme:                u.Theme,
		CreatedAt:            u.CreatedAt,
	}
}

// UpdateProfileRequest is the request body for PATCH /api/profile
type UpdateProfileRequest struct {
	Mode                 *string `json:"mode,omitempty"`
	Theme                *string `json:"theme,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
}
