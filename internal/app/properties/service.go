package properties

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"findmeroom/internal/domain/listings"
)

// Uploader stores a photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service covers listing CRUD, catalog search and photo attachment.
type Service struct {
	Listings listings.Repository
	Photos   Uploader
}

// CreateInput is the owner-supplied listing payload.
type CreateInput struct {
	Title        string
	Description  string
	PropertyType string
	Rent         int64
	Deposit      int64
	Location     string
	City         string
	Images       []string
	Amenities    []string
}

// UpdateInput updates a listing; nil fields are left unchanged.
type UpdateInput struct {
	Title        *string
	Description  *string
	PropertyType *string
	Rent         *int64
	Deposit      *int64
	Location     *string
	City         *string
	Images       []string
	Amenities    []string
	Available    *bool
}

// Create validates and stores a new listing owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*listings.Property, error) {
	property, err := listings.New(listings.CreateParams{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		PropertyType: listings.PropertyType(in.PropertyType),
		Rent:         in.Rent,
		Deposit:      in.Deposit,
		Location:     in.Location,
		City:         in.City,
		Images:       in.Images,
		Amenities:    in.Amenities,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Get returns a single listing by id.
func (s *Service) Get(ctx context.Context, id string) (*listings.Property, error) {
	return s.Listings.ByID(ctx, id)
}

// Update applies partial changes; only the owner may update.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*listings.Property, error) {
	property, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, listings.ErrNotOwner
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, listings.ErrTitleRequired
		}
		property.Title = title
	}
	if in.Description != nil {
		property.Description = strings.TrimSpace(*in.Description)
	}
	if in.PropertyType != nil {
		t := listings.PropertyType(*in.PropertyType)
		if !listings.ValidType(t) {
			return nil, listings.ErrInvalidType
		}
		property.PropertyType = t
	}
	if in.Rent != nil {
		if *in.Rent <= 0 {
			return nil, listings.ErrInvalidRent
		}
		property.Rent = *in.Rent
	}
	if in.Deposit != nil {
		if *in.Deposit < 0 {
			return nil, listings.ErrInvalidDeposit
		}
		property.Deposit = *in.Deposit
	}
	if in.Location != nil {
		property.Location = strings.TrimSpace(*in.Location)
	}
	if in.City != nil {
		property.City = strings.TrimSpace(*in.City)
	}
	if in.Images != nil {
		property.Images = append([]string(nil), in.Images...)
	}
	if in.Amenities != nil {
		property.Amenities = append([]string(nil), in.Amenities...)
	}
	if in.Available != nil {
		property.Available = *in.Available
	}
	property.UpdatedAt = time.Now().UTC()

	if err := s.Listings.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Delete removes a listing; only the owner may delete.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	property, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return err
	}
	if property.OwnerID != ownerID {
		return listings.ErrNotOwner
	}
	return s.Listings.Delete(ctx, id)
}

// Search queries the public catalog of available listings.
func (s *Service) Search(ctx context.Context, params listings.SearchParams) ([]listings.Property, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	return s.Listings.Search(ctx, params)
}

// Mine returns all listings owned by the user, available or not.
func (s *Service) Mine(ctx context.Context, ownerID string) ([]listings.Property, error) {
	return s.Listings.ByOwner(ctx, ownerID)
}

// AttachPhoto uploads a photo and appends its URL to the listing's images.
func (s *Service) AttachPhoto(ctx context.Context, ownerID, id, filename, contentType string, reader io.Reader) (*listings.Property, error) {
	if s.Photos == nil {
		return nil, fmt.Errorf("properties: photo storage is not configured")
	}
	property, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, listings.ErrNotOwner
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("properties/%s/%s%s", id, uuid.NewString(), ext)
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return nil, err
	}
	property.Images = append(property.Images, url)
	property.UpdatedAt = time.Now().UTC()
	if err := s.Listings.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}
