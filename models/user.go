package models

import "time"

// User is a registered account as persisted in the users list
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Phone        string    `json:"phone,omitempty"`
	Birthdate    string    `json:"birthdate,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionUser is the current user of a session. It never carries credentials.
type SessionUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Birthdate string    `json:"birthdate,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
}

// RegisterRequest represents the request body for POST /auth/register
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// LoginRequest represents the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the request body for PUT /profile
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthdate string `json:"birthdate"`
	Gender    string `json:"gender"`
}

// ChangePasswordRequest represents the request body for PUT /profile/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordStrength is the result of scoring a candidate password
type PasswordStrength struct {
	Score int    `json:"score"` // 0..4
	Label string `json:"label"`
}
