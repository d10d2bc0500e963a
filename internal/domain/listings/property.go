package listings

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("listings: property not found")
	ErrTitleRequired    = errors.New("listings: title is required")
	ErrLocationRequired = errors.New("listings: location and city are required")
	ErrInvalidType      = errors.New("listings: invalid property type")
	ErrInvalidRent      = errors.New("listings: rent must be positive")
	ErrInvalidDeposit   = errors.New("listings: deposit must be non-negative")
	ErrNotOwner         = errors.New("listings: user does not own this property")
)

// PropertyType enumerates the kinds of rentals that can be listed.
type PropertyType string

const (
	TypeRoom  PropertyType = "room"
	TypeHouse PropertyType = "house"
	TypePG    PropertyType = "pg"
)

func ValidType(t PropertyType) bool {
	switch t {
	case TypeRoom, TypeHouse, TypePG:
		return true
	}
	return false
}

// Property is a rental listing published by an owner.
type Property struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	PropertyType PropertyType
	Rent         int64
	Deposit      int64
	Location     string
	City         string
	Images       []string
	Amenities    []string
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Thumbnail returns the first image, used in conversation summaries.
func (p Property) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CreateParams carries validated input for a new property.
type CreateParams struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	PropertyType PropertyType
	Rent         int64
	Deposit      int64
	Location     string
	City         string
	Images       []string
	Amenities    []string
	CreatedAt    time.Time
}

// New validates params and builds a Property in the available state.
func New(params CreateParams) (*Property, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !ValidType(params.PropertyType) {
		return nil, ErrInvalidType
	}
	if params.Rent <= 0 {
		return nil, ErrInvalidRent
	}
	if params.Deposit < 0 {
		return nil, ErrInvalidDeposit
	}
	location := strings.TrimSpace(params.Location)
	city := strings.TrimSpace(params.City)
	if location == "" || city == "" {
		return nil, ErrLocationRequired
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &Property{
		ID:           params.ID,
		OwnerID:      params.OwnerID,
		Title:        title,
		Description:  strings.TrimSpace(params.Description),
		PropertyType: params.PropertyType,
		Rent:         params.Rent,
		Deposit:      params.Deposit,
		Location:     location,
		City:         city,
		Images:       append([]string(nil), params.Images...),
		Amenities:    append([]string(nil), params.Amenities...),
		Available:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SearchParams filters the public catalog. Nil rent bounds mean unbounded.
type SearchParams struct {
	City         string
	PropertyType PropertyType
	MinRent      *int64
	MaxRent      *int64
	Skip         int
	Limit        int
}

// Repository persists properties. ByID is also the resolution point the chat
// subsystem uses to validate and describe listings.
type Repository interface {
	ByID(ctx context.Context, id string) (*Property, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params SearchParams) ([]Property, error)
	ByOwner(ctx context.Context, ownerID string) ([]Property, error)
}
