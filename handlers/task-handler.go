package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekpradhan736/task-tracker-backend/middleware"
	"github.com/vivekpradhan736/task-tracker-backend/models"
	"github.com/vivekpradhan736/task-tracker-backend/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

type createTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   string            `json:"projectId"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrInvalidToken)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request payload", models.ErrValidation))
		return
	}

	if req.ProjectID == "" {
		writeError(w, fmt.Errorf("%w: please provide a task title and projectId", models.ErrValidation))
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid project id format", models.ErrValidation))
		return
	}

	task, err := h.Service.CreateTask(r.Context(), req.Title, req.Description, req.Status, projectID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task.ToResponse())
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	callerID, projectID, err := callerAndID(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.Service.GetTasksByProject(r.Context(), projectID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TasksToResponse(tasks))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	callerID, taskID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.Service.GetTask(r.Context(), taskID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task.ToResponse())
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	callerID, taskID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request payload", models.ErrValidation))
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), taskID, callerID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task.ToResponse())
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	callerID, taskID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteTask(r.Context(), taskID, callerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
