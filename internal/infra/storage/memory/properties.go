package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"findmeroom/internal/domain/listings"
)

// PropertyRepository stores listings in memory. Not suitable for production.
type PropertyRepository struct {
	mu   sync.RWMutex
	byID map[string]*listings.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{byID: make(map[string]*listings.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id string) (*listings.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if property, ok := r.byID[id]; ok {
		return cloneProperty(property), nil
	}
	return nil, listings.ErrNotFound
}

func (r *PropertyRepository) Save(ctx context.Context, property *listings.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[property.ID] = cloneProperty(property)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return listings.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *PropertyRepository) Search(ctx context.Context, params listings.SearchParams) ([]listings.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]listings.Property, 0)
	for _, property := range r.byID {
		if !property.Available {
			continue
		}
		if params.City != "" && !strings.Contains(strings.ToLower(property.City), strings.ToLower(params.City)) {
			continue
		}
		if params.PropertyType != "" && property.PropertyType != params.PropertyType {
			continue
		}
		if params.MinRent != nil && property.Rent < *params.MinRent {
			continue
		}
		if params.MaxRent != nil && property.Rent > *params.MaxRent {
			continue
		}
		matched = append(matched, *cloneProperty(property))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if params.Skip >= len(matched) {
		return []listings.Property{}, nil
	}
	matched = matched[params.Skip:]
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	return matched, nil
}

func (r *PropertyRepository) ByOwner(ctx context.Context, ownerID string) ([]listings.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]listings.Property, 0)
	for _, property := range r.byID {
		if property.OwnerID == ownerID {
			out = append(out, *cloneProperty(property))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneProperty(p *listings.Property) *listings.Property {
	if p == nil {
		return nil
	}
	copyProperty := *p
	copyProperty.Images = append([]string(nil), p.Images...)
	copyProperty.Amenities = append([]string(nil), p.Amenities...)
	return &copyProperty
}

var _ listings.Repository = (*PropertyRepository)(nil)
