package dto

import "time"

// Property is the public listing representation.
type Property struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type"`
	Rent         int64     `json:"rent"`
	Deposit      int64     `json:"deposit"`
	Location     string    `json:"location"`
	City         string    `json:"city"`
	Images       []string  `json:"images"`
	Amenities    []string  `json:"amenities"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertyCreateRequest is the payload for a new listing.
type PropertyCreateRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type"`
	Rent         int64    `json:"rent"`
	Deposit      int64    `json:"deposit"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
}

// PropertyUpdateRequest applies partial changes; absent fields are ignored.
type PropertyUpdateRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	PropertyType *string  `json:"property_type"`
	Rent         *int64   `json:"rent"`
	Deposit      *int64   `json:"deposit"`
	Location     *string  `json:"location"`
	City         *string  `json:"city"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	Available    *bool    `json:"available"`
}
