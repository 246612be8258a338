package models

import "time"

// User is a registered account. It never changes after signup.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Account is the signup payload.
type Account struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Credentials is the signin payload. Never persisted. Empty values are
// accepted here and rejected by the credential check itself.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the opaque session handle returned by signin.
type Token struct {
	Token string `json:"token"`
}
