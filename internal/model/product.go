// Package model defines domain entities for the application.
package model

import "time"

// Product represents an inventory item owned by a single user.
// Description, Price, ImageURL and SKU are optional; a nil Price means
// the owner did not set one.
type Product struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	SKU         *string   `json:"sku,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasImage reports whether the product has a stored image reference.
func (p *Product) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}
