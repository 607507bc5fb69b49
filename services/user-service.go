package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/models"
	"github.com/vivekpradhan736/task-tracker-backend/utils"
)

type UserService struct {
	UserCollection *mongo.Collection
	jwtSecret      []byte
}

func NewUserService(userCollection *mongo.Collection, jwtSecret []byte) *UserService {
	return &UserService{
		UserCollection: userCollection,
		jwtSecret:      jwtSecret,
	}
}

// RegisterUser creates a new user with a hashed password and issues a token.
// Email uniqueness is checked up front and backed by the unique index, so a
// racing duplicate insert still maps to the same conflict error.
func (s *UserService) RegisterUser(ctx context.Context, email, password, name, country string) (*models.User, string, error) {
	if email == "" || password == "" || name == "" || country == "" {
		return nil, "", fmt.Errorf("%w: please provide all required fields", models.ErrValidation)
	}

	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return nil, "", models.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Country:  country,
	}

	result, err := s.UserCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", models.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to save user: %v", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateToken(user.ID.Hex(), s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %v", err)
	}

	logging.Logger.Infof("User registered: %s", user.Email)
	return user, token, nil
}

// LoginUser checks credentials and issues a fresh token. A missing user and
// a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please provide email and password", models.ErrValidation)
	}

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %v", err)
	}

	logging.Logger.Infof("User logged in: %s", user.Email)
	return &user, token, nil
}
