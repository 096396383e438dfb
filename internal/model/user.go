package model

import "time"

// User represents a registered journal author.
type User struct {
	ID        int64
	Email     string
	AuthHash  string
	CreatedAt time.Time
}

// RegisterRequest represents a registration submission. Password2 is the
// confirmation field and must equal Password.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginRequest represents a login submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token and user info after a successful
// registration or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no hash).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
