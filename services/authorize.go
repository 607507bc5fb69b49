package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekpradhan736/task-tracker-backend/models"
)

// ownedProject resolves a project and authorizes the caller against its
// owner. Every project and task operation goes through this one check:
// models.ErrProjectNotFound when no such project exists,
// models.ErrForbidden when it exists but belongs to someone else.
func ownedProject(ctx context.Context, projects *mongo.Collection, projectID, callerID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := projects.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrProjectNotFound
		}
		return nil, err
	}

	if project.UserID != callerID {
		return nil, models.ErrForbidden
	}

	return &project, nil
}
