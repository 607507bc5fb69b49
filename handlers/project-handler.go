package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekpradhan736/task-tracker-backend/middleware"
	"github.com/vivekpradhan736/task-tracker-backend/models"
	"github.com/vivekpradhan736/task-tracker-backend/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrInvalidToken)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request payload", models.ErrValidation))
		return
	}

	project, err := h.Service.CreateProject(r.Context(), req.Title, req.Description, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project.ToResponse())
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrInvalidToken)
		return
	}

	projects, err := h.Service.GetProjects(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ProjectsToResponse(projects))
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	callerID, projectID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.Service.GetProject(r.Context(), projectID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project.ToResponse())
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	callerID, projectID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request payload", models.ErrValidation))
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), projectID, callerID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project.ToResponse())
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	callerID, projectID, err := callerAndID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteProject(r.Context(), projectID, callerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// callerAndID pulls the authenticated caller from the context and parses an
// ObjectID path variable.
func callerAndID(r *http.Request, varName string) (primitive.ObjectID, primitive.ObjectID, error) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, primitive.NilObjectID, models.ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[varName])
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("%w: invalid id format", models.ErrValidation)
	}

	return callerID, id, nil
}
