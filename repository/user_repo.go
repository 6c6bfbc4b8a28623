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

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ListActive(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateUsername(ctx context.Context, id primitive.ObjectID, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// withoutPassword is the projection used whenever users are listed.
var withoutPassword = bson.M{"password": 0}

type userRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(database.UsersCollection), now: time.Now}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *userRepository) ListActive(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *userRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(withoutPassword))
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByEmailOrUsername returns any user holding either the email or the
// username.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

// Create inserts user. A unique index violation is returned as a
// *DuplicateKeyError.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("inserting user: %w", asDuplicateKey(err))
	}
	return nil
}

func (r *userRepository) UpdateUsername(ctx context.Context, id primitive.ObjectID, username string) (*models.User, error) {
	update := bson.M{"$set": bson.M{
		"username":  username,
		"updatedAt": r.now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating username: %w", asDuplicateKey(err))
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": r.now().UTC().Truncate(time.Millisecond),
	}})
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return res.DeletedCount > 0, nil
}
