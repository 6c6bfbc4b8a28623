package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/database"
)

// TokenRepository records revoked token IDs until the tokens expire. Expired
// entries are removed by the TTL index on expiresAt.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type revokedToken struct {
	JTI       string    `bson:"jti"`
	ExpiresAt time.Time `bson:"expiresAt"`
	RevokedAt time.Time `bson:"revokedAt"`
}

type tokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) TokenRepository {
	return &tokenRepository{coll: db.Collection(database.RevokedTokensCollection)}
}

// Revoke is idempotent; revoking an already revoked token succeeds.
func (r *tokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.coll.InsertOne(ctx, revokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: time.Now().UTC(),
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.coll.FindOne(ctx, bson.M{"jti": jti}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking revoked token: %w", err)
	}
	return true, nil
}
