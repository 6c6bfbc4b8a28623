package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"inventory/models"
)

const usersNS = "inventory.users"

func userDoc(id primitive.ObjectID, email, username string, active bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "firstName", Value: "Ana"},
		{Key: "lastName", Value: "Reyes"},
		{Key: "age", Value: 30},
		{Key: "email", Value: email},
		{Key: "username", Value: username},
		{Key: "password", Value: "$2a$12$hash"},
		{Key: "isActive", Value: active},
		{Key: "type", Value: "user"},
	}
}

func TestUserRepositoryList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all users", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		doc := userDoc(primitive.NewObjectID(), "ana@example.com", "ana", true)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, doc))

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 1)
		assert.Equal(mt, "ana@example.com", users[0].Email)
	})

	mt.Run("active users", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		users, err := repo.ListActive(context.Background())
		require.NoError(mt, err)
		assert.Empty(mt, users)
	})
}

func TestUserRepositoryFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			userDoc(primitive.NewObjectID(), "ana@example.com", "ana", false)))

		user, err := repo.FindByEmail(context.Background(), "ana@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "$2a$12$hash", user.PasswordHash)
		assert.False(mt, user.IsActive)
	})

	mt.Run("by email or username missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.FindByEmailOrUsername(context.Background(), "ana@example.com", "ana")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("by id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			userDoc(id, "ana@example.com", "ana", true)))

		user, err := repo.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Email: "ana@example.com", Username: "ana"}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: `E11000 duplicate key error collection: inventory.users index: email_1 dup key: { email: "ana@example.com" }`,
		}))

		err := repo.Create(context.Background(), &models.User{Email: "ana@example.com", Username: "ana"})

		var dup *DuplicateKeyError
		require.ErrorAs(mt, err, &dup)
		assert.Equal(mt, "email", dup.Field)
	})
}

func TestUserRepositoryUpdateUsername(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updated", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: userDoc(id, "ana@example.com", "ana.r", true)},
		})

		user, err := repo.UpdateUsername(context.Background(), id, "ana.r")
		require.NoError(mt, err)
		assert.Equal(mt, "ana.r", user.Username)
	})

	mt.Run("taken", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: `E11000 duplicate key error collection: inventory.users index: username_1 dup key: { username: "bob" }`,
		}))

		_, err := repo.UpdateUsername(context.Background(), primitive.NewObjectID(), "bob")

		var dup *DuplicateKeyError
		require.ErrorAs(mt, err, &dup)
		assert.Equal(mt, "username", dup.Field)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.UpdateUsername(context.Background(), primitive.NewObjectID(), "bob")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updated", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		assert.NoError(mt, repo.UpdatePassword(context.Background(), primitive.NewObjectID(), "newhash"))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.UpdatePassword(context.Background(), primitive.NewObjectID(), "newhash")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestUserRepositoryDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})

		deleted, err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, deleted)
	})
}

func TestTokenRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	const ns = "inventory.revoked_tokens"

	mt.Run("revoke", func(mt *mtest.T) {
		repo := NewTokenRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))
	})

	mt.Run("revoke twice", func(mt *mtest.T) {
		repo := NewTokenRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: `E11000 duplicate key error collection: inventory.revoked_tokens index: jti_1 dup key: { jti: "jti-1" }`,
		}))

		assert.NoError(mt, repo.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))
	})

	mt.Run("revoked", func(mt *mtest.T) {
		repo := NewTokenRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}}))

		revoked, err := repo.IsRevoked(context.Background(), "jti-1")
		require.NoError(mt, err)
		assert.True(mt, revoked)
	})

	mt.Run("not revoked", func(mt *mtest.T) {
		repo := NewTokenRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		revoked, err := repo.IsRevoked(context.Background(), "jti-2")
		require.NoError(mt, err)
		assert.False(mt, revoked)
	})
}
