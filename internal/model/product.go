package model

import "time"

// Product represents a catalog product. Price is stored in minor currency
// units (cents); Stock must never go negative.
type Product struct {
	ID          string    `json:"id"`
	Site        string    `json:"site"`
	Language    string    `json:"language"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	SKU         string    `json:"sku"`
	Weight      string    `json:"weight,omitempty"`
	Dimensions  string    `json:"dimensions,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput holds the caller-supplied fields for creating a product.
type ProductInput struct {
	Site        string
	Language    string
	Name        string
	Description string
	Price       int64
	Stock       int64
	SKU         string
	Weight      string
	Dimensions  string
	Tags        []string
	Status      string
}

// ProductPatch lists the product fields eligible for update.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int64
	SKU         *string
	Weight      *string
	Dimensions  *string
	Tags        *[]string
	Status      *string
}

// Apply merges the set fields of the patch into pr.
func (p ProductPatch) Apply(pr *Product) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	if p.SKU != nil {
		pr.SKU = *p.SKU
	}
	if p.Weight != nil {
		pr.Weight = *p.Weight
	}
	if p.Dimensions != nil {
		pr.Dimensions = *p.Dimensions
	}
	if p.Tags != nil {
		pr.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
}
