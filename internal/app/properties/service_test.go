package properties

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findmeroom/internal/domain/listings"
	"findmeroom/internal/infra/storage/memory"
)

type fakeUploader struct {
	keys []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	u.keys = append(u.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newPropertiesService() (*Service, *fakeUploader) {
	uploader := &fakeUploader{}
	return &Service{Listings: memory.NewPropertyRepository(), Photos: uploader}, uploader
}

func createListing(t *testing.T, s *Service, ownerID, title string) *listings.Property {
	t.Helper()
	property, err := s.Create(context.Background(), ownerID, CreateInput{
		Title:        title,
		PropertyType: "room",
		Rent:         12000,
		Deposit:      24000,
		Location:     "Koramangala",
		City:         "Bangalore",
	})
	require.NoError(t, err)
	return property
}

func TestCreateListing(t *testing.T) {
	s, _ := newPropertiesService()

	property := createListing(t, s, "owner", "Sunny room")
	assert.NotEmpty(t, property.ID)
	assert.Equal(t, "owner", property.OwnerID)
	assert.True(t, property.Available)

	_, err := s.Create(context.Background(), "owner", CreateInput{
		Title: "Bad", PropertyType: "castle", Rent: 100, Location: "x", City: "y",
	})
	assert.ErrorIs(t, err, listings.ErrInvalidType)

	_, err = s.Create(context.Background(), "owner", CreateInput{
		Title: "Bad", PropertyType: "room", Rent: 0, Location: "x", City: "y",
	})
	assert.ErrorIs(t, err, listings.ErrInvalidRent)
}

func TestUpdateListingOwnership(t *testing.T) {
	ctx := context.Background()
	s, _ := newPropertiesService()
	property := createListing(t, s, "owner", "Sunny room")

	newRent := int64(15000)
	updated, err := s.Update(ctx, "owner", property.ID, UpdateInput{Rent: &newRent})
	require.NoError(t, err)
	assert.Equal(t, newRent, updated.Rent)
	assert.Equal(t, "Sunny room", updated.Title)

	_, err = s.Update(ctx, "intruder", property.ID, UpdateInput{Rent: &newRent})
	assert.ErrorIs(t, err, listings.ErrNotOwner)

	_, err = s.Update(ctx, "owner", "missing", UpdateInput{Rent: &newRent})
	assert.ErrorIs(t, err, listings.ErrNotFound)
}

func TestDeleteListingOwnership(t *testing.T) {
	ctx := context.Background()
	s, _ := newPropertiesService()
	property := createListing(t, s, "owner", "Sunny room")

	assert.ErrorIs(t, s.Delete(ctx, "intruder", property.ID), listings.ErrNotOwner)
	require.NoError(t, s.Delete(ctx, "owner", property.ID))

	_, err := s.Get(ctx, property.ID)
	assert.ErrorIs(t, err, listings.ErrNotFound)
}

func TestSearchClampsPaging(t *testing.T) {
	ctx := context.Background()
	s, _ := newPropertiesService()
	for range [25]struct{}{} {
		createListing(t, s, "owner", "Sunny room")
	}

	results, err := s.Search(ctx, listings.SearchParams{})
	require.NoError(t, err)
	assert.Len(t, results, 20)

	results, err = s.Search(ctx, listings.SearchParams{Limit: 1000, Skip: -5})
	require.NoError(t, err)
	assert.Len(t, results, 20)

	results, err = s.Search(ctx, listings.SearchParams{Limit: 5, Skip: 22})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchFilters(t *testing.T) {
	ctx := context.Background()
	s, _ := newPropertiesService()
	createListing(t, s, "owner", "Bangalore room")
	_, err := s.Create(ctx, "owner", CreateInput{
		Title: "Pune house", PropertyType: "house", Rent: 30000, Location: "Baner", City: "Pune",
	})
	require.NoError(t, err)

	results, err := s.Search(ctx, listings.SearchParams{City: "pune"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pune house", results[0].Title)

	minRent := int64(20000)
	results, err = s.Search(ctx, listings.SearchParams{MinRent: &minRent})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pune house", results[0].Title)

	results, err = s.Search(ctx, listings.SearchParams{PropertyType: listings.TypeRoom})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bangalore room", results[0].Title)
}

func TestAttachPhoto(t *testing.T) {
	ctx := context.Background()
	s, uploader := newPropertiesService()
	property := createListing(t, s, "owner", "Sunny room")

	updated, err := s.AttachPhoto(ctx, "owner", property.ID, "front.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	require.Len(t, updated.Images, 1)
	assert.True(t, strings.HasPrefix(updated.Images[0], "https://cdn.example.com/properties/"+property.ID+"/"))
	assert.True(t, strings.HasSuffix(updated.Images[0], ".jpg"))
	require.Len(t, uploader.keys, 1)

	_, err = s.AttachPhoto(ctx, "intruder", property.ID, "x.jpg", "image/jpeg", strings.NewReader("y"))
	assert.ErrorIs(t, err, listings.ErrNotOwner)
}
