package handler

import (
	"time"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// The wire format is camelCase to match the frontend contract; the BSON
// layer uses snake_case independently.

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  *domain.UserView `json:"user"`
}

// --- Entries ---

type createEntryRequest struct {
	WorkDone         string     `json:"workDone"         validate:"required"`
	Blockers         string     `json:"blockers"         validate:"required"`
	Learnings        string     `json:"learnings"        validate:"required"`
	GithubCommitLink string     `json:"githubCommitLink" validate:"omitempty,url"`
	Date             *time.Time `json:"date"`
}

// updateEntryRequest is a patch: only present fields overwrite.
type updateEntryRequest struct {
	WorkDone         *string `json:"workDone"         validate:"omitempty,min=1"`
	Blockers         *string `json:"blockers"         validate:"omitempty,min=1"`
	Learnings        *string `json:"learnings"        validate:"omitempty,min=1"`
	GithubCommitLink *string `json:"githubCommitLink" validate:"omitempty,url"`
}

type entryResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	WorkDone         string    `json:"workDone"`
	Blockers         string    `json:"blockers"`
	Learnings        string    `json:"learnings"`
	GithubCommitLink string    `json:"githubCommitLink,omitempty"`
	Date             time.Time `json:"date"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type deleteEntryResponse struct {
	Message string `json:"message"`
}

// --- Profile ---

// updateProfileRequest is a patch: only present fields overwrite. Password
// and role are not part of the profile surface.
type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Team  *string `json:"team"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		UserName:         e.AuthorName,
		WorkDone:         e.WorkDone,
		Blockers:         e.Blockers,
		Learnings:        e.Learnings,
		GithubCommitLink: e.GithubCommitLink,
		Date:             e.Date.UTC(),
		CreatedAt:        e.CreatedAt.UTC(),
		UpdatedAt:        e.UpdatedAt.UTC(),
	}
}
