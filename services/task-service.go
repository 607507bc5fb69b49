package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/models"
)

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
}

func NewTaskService(tasksCollection, projectsCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
	}
}

// authorizeParent resolves the parent project for a task operation. A parent
// that does not exist reads the same as one owned by someone else: the caller
// only ever learns "forbidden".
func (s *TaskService) authorizeParent(ctx context.Context, projectID, callerID primitive.ObjectID) error {
	_, err := ownedProject(ctx, s.ProjectsCollection, projectID, callerID)
	if errors.Is(err, models.ErrProjectNotFound) {
		return models.ErrForbidden
	}
	return err
}

// CreateTask creates a task under a project owned by the caller. Status
// defaults to todo; there is no per-project task cap.
func (s *TaskService) CreateTask(ctx context.Context, title, description string, status models.TaskStatus, projectID, callerID primitive.ObjectID) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: please provide a task title and projectId", models.ErrValidation)
	}
	if projectID.IsZero() || callerID.IsZero() {
		return nil, fmt.Errorf("%w: please provide a task title and projectId", models.ErrValidation)
	}

	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", models.ErrValidation, status)
	}

	if err := s.authorizeParent(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      status,
		ProjectID:   projectID,
		CreatedAt:   time.Now(),
	}

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	logging.Logger.Infof("Task created: %s under project %s", task.ID.Hex(), projectID.Hex())
	return task, nil
}

// GetTasksByProject lists tasks for a project owned by the caller.
func (s *TaskService) GetTasksByProject(ctx context.Context, projectID, callerID primitive.ObjectID) ([]models.Task, error) {
	if err := s.authorizeParent(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return tasks, nil
}

// getAuthorizedTask fetches a task and authorizes the caller through its
// parent project. A missing task is not-found; a missing or foreign parent
// is forbidden.
func (s *TaskService) getAuthorizedTask(ctx context.Context, taskID, callerID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.authorizeParent(ctx, task.ProjectID, callerID); err != nil {
		return nil, err
	}

	return &task, nil
}

// GetTask returns a single task after the ownership chain check.
func (s *TaskService) GetTask(ctx context.Context, taskID, callerID primitive.ObjectID) (*models.Task, error) {
	return s.getAuthorizedTask(ctx, taskID, callerID)
}

// UpdateTask applies a patch to an owned task. Moving into completed stamps
// completedAt, moving to any other status clears it, and a patch without a
// status leaves the stamp alone.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, callerID primitive.ObjectID, patch models.TaskUpdate) (*models.Task, error) {
	task, err := s.getAuthorizedTask(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown task status %q", models.ErrValidation, *patch.Status)
		}
		task.ApplyStatus(*patch.Status, time.Now())
		set["status"] = task.Status
		if task.CompletedAt != nil {
			set["completedAt"] = *task.CompletedAt
		} else {
			unset["completedAt"] = ""
		}
	}
	if len(set) == 0 {
		return task, nil
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update); err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	var updated models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to fetch updated task: %v", err)
	}

	return &updated, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID primitive.ObjectID) error {
	if _, err := s.getAuthorizedTask(ctx, taskID, callerID); err != nil {
		return err
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}

	logging.Logger.Infof("Task deleted: %s by user %s", taskID.Hex(), callerID.Hex())
	return nil
}
