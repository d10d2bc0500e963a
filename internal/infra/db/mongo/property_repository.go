package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"findmeroom/internal/domain/listings"
)

// PropertyRepository persists listings in the "properties" collection.
type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id string) (*listings.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, listings.ErrNotFound
		}
		return nil, err
	}
	return doc.toProperty(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, property *listings.Property) error {
	doc := newPropertyDocument(property)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return listings.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Search(ctx context.Context, params listings.SearchParams) ([]listings.Property, error) {
	filter := bson.M{"available": true}
	if params.City != "" {
		filter["city"] = bson.M{"$regex": primitive.Regex{Pattern: params.City, Options: "i"}}
	}
	if params.PropertyType != "" {
		filter["property_type"] = string(params.PropertyType)
	}
	rent := bson.M{}
	if params.MinRent != nil {
		rent["$gte"] = *params.MinRent
	}
	if params.MaxRent != nil {
		rent["$lte"] = *params.MaxRent
	}
	if len(rent) > 0 {
		filter["rent"] = rent
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Skip)).
		SetLimit(int64(params.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeProperties(ctx, cursor)
}

func (r *PropertyRepository) ByOwner(ctx context.Context, ownerID string) ([]listings.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeProperties(ctx, cursor)
}

type propertyDocument struct {
	ID           string   `bson:"_id"`
	OwnerID      string   `bson:"owner_id"`
	Title        string   `bson:"title"`
	Description  string   `bson:"description"`
	PropertyType string   `bson:"property_type"`
	Rent         int64    `bson:"rent"`
	Deposit      int64    `bson:"deposit"`
	Location     string   `bson:"location"`
	City         string   `bson:"city"`
	Images       []string `bson:"images"`
	Amenities    []string `bson:"amenities"`
	Available    bool     `bson:"available"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

func newPropertyDocument(p *listings.Property) propertyDocument {
	return propertyDocument{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: string(p.PropertyType),
		Rent:         p.Rent,
		Deposit:      p.Deposit,
		Location:     p.Location,
		City:         p.City,
		Images:       append([]string(nil), p.Images...),
		Amenities:    append([]string(nil), p.Amenities...),
		Available:    p.Available,
		CreatedAt:    p.CreatedAt.UnixMilli(),
		UpdatedAt:    p.UpdatedAt.UnixMilli(),
	}
}

func (d propertyDocument) toProperty() *listings.Property {
	return &listings.Property{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		Title:        d.Title,
		Description:  d.Description,
		PropertyType: listings.PropertyType(d.PropertyType),
		Rent:         d.Rent,
		Deposit:      d.Deposit,
		Location:     d.Location,
		City:         d.City,
		Images:       append([]string(nil), d.Images...),
		Amenities:    append([]string(nil), d.Amenities...),
		Available:    d.Available,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
}

func decodeProperties(ctx context.Context, cursor *mongo.Cursor) ([]listings.Property, error) {
	defer cursor.Close(ctx)
	properties := make([]listings.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		properties = append(properties, *doc.toProperty())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

var _ listings.Repository = (*PropertyRepository)(nil)
