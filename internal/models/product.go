package models

// RawProduct is a product record as the catalog API sends it. Required fields
// are pointers so that a missing key and a zero value can be told apart.
type RawProduct struct {
	ID          *string   `json:"id" validate:"required"`
	Name        *string   `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price" validate:"required,gt=0"`
	Category    *string   `json:"category" validate:"required"`
	Gender      *string   `json:"gender" validate:"required"`
	Sport       *string   `json:"sport" validate:"required"`
	Colors      []*string `json:"colors" validate:"required,dive,required"`
	Sizes       []*string `json:"sizes" validate:"required,dive,required"`
	ImageURL    *string   `json:"imageUrl" validate:"required"`
	Badge       *string   `json:"badge,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount *float64  `json:"reviewCount,omitempty" validate:"omitempty,integral"`
	CreatedAt   *string   `json:"createdAt,omitempty"`
	UpdatedAt   *string   `json:"updatedAt,omitempty"`
}

type RawProductsResponse struct {
	Data       []RawProduct   `json:"data" validate:"required,dive"`
	Pagination *RawPagination `json:"pagination" validate:"required"`
}

// RawPagination takes JSON numbers as floats so 1.0 is accepted; fractional
// values are rejected by validation.
type RawPagination struct {
	Page       *float64 `json:"page" validate:"required,integral"`
	Limit      *float64 `json:"limit" validate:"required,integral"`
	Total      *float64 `json:"total" validate:"required,integral"`
	TotalPages *float64 `json:"totalPages" validate:"required,integral"`
}

type BadgeColor string

const (
	BadgeRed   BadgeColor = "red"
	BadgeGreen BadgeColor = "green"
	BadgeBlue  BadgeColor = "blue"
)

type Badge struct {
	Text  string     `json:"text"`
	Color BadgeColor `json:"color"`
}

// Product is the render-ready projection of a RawProduct.
type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
	Colors int     `json:"colors"`
	Image  string  `json:"image"`
	Badge  *Badge  `json:"badge,omitempty"`
}

// ProductDetail carries the fields only the detail view shows.
type ProductDetail struct {
	Product
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
}

// ProductPage is one validated, transformed collection response.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
