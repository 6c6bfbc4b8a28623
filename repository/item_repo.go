package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/database"
	"inventory/models"
)

type ItemRepository interface {
	List(ctx context.Context) ([]models.Item, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, id primitive.ObjectID, upd models.ItemUpdate) (*models.Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type itemRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewItemRepository(db *mongo.Database) ItemRepository {
	return &itemRepository{coll: db.Collection(database.ItemsCollection), now: time.Now}
}

func (r *itemRepository) List(ctx context.Context) ([]models.Item, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding items: %w", err)
	}

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	var item models.Item
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	return &item, nil
}

// Create inserts item, assigning its ID and timestamps.
func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd and returns the stored result.
func (r *itemRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.ItemUpdate) (*models.Item, error) {
	set := bson.M{"updatedAt": r.now().UTC().Truncate(time.Millisecond)}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = upd.Description
	}
	if upd.PhotoURL != nil {
		set["photoUrl"] = *upd.PhotoURL
	}
	if upd.QtyTotal != nil {
		set["qtyTotal"] = *upd.QtyTotal
	}
	if upd.QtyAvailable != nil {
		set["qtyAvailable"] = *upd.QtyAvailable
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.Item
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return &item, nil
}

// Delete removes the item and reports whether it existed.
func (r *itemRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return res.DeletedCount > 0, nil
}
