package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/vivekpradhan736/task-tracker-backend/models"
	"github.com/vivekpradhan736/task-tracker-backend/utils"
)

var testSecret = []byte("test-secret")

func TestRegisterUser_Validation(t *testing.T) {
	svc := NewUserService(nil, testSecret)

	_, _, err := svc.RegisterUser(context.Background(), "", "pass", "Ana", "RS")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = svc.RegisterUser(context.Background(), "a@x.com", "", "Ana", "RS")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = svc.RegisterUser(context.Background(), "a@x.com", "pass", "", "RS")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = svc.RegisterUser(context.Background(), "a@x.com", "pass", "Ana", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRegisterUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success issues a working token", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "task_tracker.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		user, token, err := svc.RegisterUser(context.Background(), "a@x.com", "pass123", "Ana", "RS")
		require.NoError(mt, err)
		assert.Equal(mt, "a@x.com", user.Email)
		assert.False(mt, user.ID.IsZero())

		// the stored password is a hash, not the plaintext
		assert.NotEqual(mt, "pass123", user.Password)
		assert.True(mt, utils.CheckPassword(user.Password, "pass123"))

		gotID, err := utils.ValidateToken(token, testSecret)
		require.NoError(mt, err)
		assert.Equal(mt, user.ID.Hex(), gotID)
	})

	mt.Run("duplicate email from pre-check", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		existing := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "hash"},
			{Key: "name", Value: "Ana"},
			{Key: "country", Value: "RS"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "task_tracker.users", mtest.FirstBatch, existing))

		_, _, err := svc.RegisterUser(context.Background(), "a@x.com", "pass123", "Ana", "RS")
		assert.ErrorIs(mt, err, models.ErrEmailTaken)
	})

	mt.Run("duplicate email from unique index race", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "task_tracker.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "duplicate key error",
			}),
		)

		_, _, err := svc.RegisterUser(context.Background(), "a@x.com", "pass123", "Ana", "RS")
		assert.ErrorIs(mt, err, models.ErrEmailTaken)
	})
}

func TestLoginUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	hashed, err := utils.HashPassword("pass123")
	require.NoError(t, err)

	userDoc := func(id primitive.ObjectID) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: hashed},
			{Key: "name", Value: "Ana"},
			{Key: "country", Value: "RS"},
		}
	}

	mt.Run("success", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)
		userID := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "task_tracker.users", mtest.FirstBatch, userDoc(userID)))

		user, token, err := svc.LoginUser(context.Background(), "a@x.com", "pass123")
		require.NoError(mt, err)
		assert.Equal(mt, userID, user.ID)

		gotID, err := utils.ValidateToken(token, testSecret)
		require.NoError(mt, err)
		assert.Equal(mt, userID.Hex(), gotID)
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "task_tracker.users", mtest.FirstBatch, userDoc(primitive.NewObjectID())))

		_, _, err := svc.LoginUser(context.Background(), "a@x.com", "wrong")
		assert.ErrorIs(mt, err, models.ErrInvalidCredentials)
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "task_tracker.users", mtest.FirstBatch))

		_, _, err := svc.LoginUser(context.Background(), "nobody@x.com", "pass123")
		assert.ErrorIs(mt, err, models.ErrInvalidCredentials)
	})

	mt.Run("missing fields", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll, testSecret)

		_, _, err := svc.LoginUser(context.Background(), "", "pass123")
		assert.ErrorIs(mt, err, models.ErrValidation)

		_, _, err = svc.LoginUser(context.Background(), "a@x.com", "")
		assert.ErrorIs(mt, err, models.ErrValidation)
	})
}
