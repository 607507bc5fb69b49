package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/models"
)

// A user owns at most this many projects. The count check and the insert are
// two separate store operations, so the cap is best effort under concurrent
// creates.
const maxProjectsPerUser = 14

type ProjectService struct {
	ProjectsCollection *mongo.Collection
}

func NewProjectService(projectsCollection *mongo.Collection) *ProjectService {
	return &ProjectService{ProjectsCollection: projectsCollection}
}

// CreateProject creates a project owned by callerID, enforcing the per-user
// project cap.
func (s *ProjectService) CreateProject(ctx context.Context, title, description string, callerID primitive.ObjectID) (*models.Project, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: please provide a project title", models.ErrValidation)
	}
	if callerID.IsZero() {
		return nil, fmt.Errorf("%w: user id not provided", models.ErrValidation)
	}

	count, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"userId": callerID})
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %v", err)
	}
	if count >= maxProjectsPerUser {
		return nil, models.ErrProjectLimit
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		UserID:      callerID,
		CreatedAt:   time.Now(),
	}

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)

	logging.Logger.Infof("Project created: %s by user %s", project.ID.Hex(), callerID.Hex())
	return project, nil
}

// GetProjects returns all projects owned by callerID in store-native order.
func (s *ProjectService) GetProjects(ctx context.Context, callerID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"userId": callerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	return projects, nil
}

// GetProject returns a single project after the ownership check.
func (s *ProjectService) GetProject(ctx context.Context, projectID, callerID primitive.ObjectID) (*models.Project, error) {
	return ownedProject(ctx, s.ProjectsCollection, projectID, callerID)
}

// UpdateProject applies a patch to an owned project. The owner is never
// touched: the patch shape has no userId field, so a client-supplied value
// is discarded before it gets here.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID, callerID primitive.ObjectID, patch models.ProjectUpdate) (*models.Project, error) {
	project, err := ownedProject(ctx, s.ProjectsCollection, projectID, callerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if len(set) == 0 {
		return project, nil
	}

	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	var updated models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to fetch updated project: %v", err)
	}

	return &updated, nil
}

// DeleteProject removes an owned project. Tasks under it are not cascaded;
// they stay in the store but become unreachable through listing.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, callerID primitive.ObjectID) error {
	if _, err := ownedProject(ctx, s.ProjectsCollection, projectID, callerID); err != nil {
		return err
	}

	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	logging.Logger.Infof("Project deleted: %s by user %s", projectID.Hex(), callerID.Hex())
	return nil
}
