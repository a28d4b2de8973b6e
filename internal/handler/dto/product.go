package dto

import (
	"time"

	"github.com/producthub/producthub/internal/model"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
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

// ProductListResponse wraps a list of products, newest first.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// CreateProductResponse is returned by successful product creation.
type CreateProductResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// SingleProductResponse wraps one product.
type SingleProductResponse struct {
	Product ProductResponse `json:"product"`
}

// ToProductResponse converts a Product model to ProductResponse DTO.
func ToProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		OwnerID:     product.OwnerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		SKU:         product.SKU,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ToProductListResponse converts a slice of Product models.
func ToProductListResponse(products []*model.Product) ProductListResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = ToProductResponse(product)
	}
	return ProductListResponse{Products: responses}
}
