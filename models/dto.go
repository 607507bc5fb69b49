package models

import "time"

// Wire DTOs. Timestamps go out as RFC 3339 strings and the password hash
// never leaves the models layer.

type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	ProjectID   string     `json:"projectId"`
	CreatedAt   string     `json:"createdAt"`
	CompletedAt *string    `json:"completedAt,omitempty"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:      u.ID.Hex(),
		Email:   u.Email,
		Name:    u.Name,
		Country: u.Country,
	}
}

func (p *Project) ToResponse() ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID.Hex(),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (t *Task) ToResponse() TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		ProjectID:   t.ProjectID.Hex(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		completed := t.CompletedAt.UTC().Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

func TasksToResponse(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, tasks[i].ToResponse())
	}
	return responses
}

func ProjectsToResponse(projects []Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, projects[i].ToResponse())
	}
	return responses
}
