// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that owns products.
// PasswordHash is never serialized into API responses.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
