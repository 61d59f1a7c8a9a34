package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by the repository when the store's unique
// constraint on candidate email rejects a write. The store is the
// authoritative guard; service-level existence checks are advisory.
var ErrDuplicateEmail = errors.New("candidate email already in use")

type RecruitmentStatus string

const (
	StatusNew        RecruitmentStatus = "new"
	StatusInProgress RecruitmentStatus = "in_progress"
	StatusAccepted   RecruitmentStatus = "accepted"
	StatusRejected   RecruitmentStatus = "rejected"
)

type Note struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	RecruiterID int64     `json:"recruiterId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Candidate struct {
	ID                string            `json:"id"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	YearsOfExperience int64             `json:"yearsOfExperience"`
	JobOfferIDs       []int64           `json:"jobOfferIds"`
	Status            RecruitmentStatus `json:"status"`
	ConsentDate       string            `json:"consentDate"`
	Notes             []Note            `json:"notes"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// CandidateInput carries the fields a client supplies at creation.
// YearsOfExperience is a pointer so a missing value can be told apart
// from an explicit zero.
type CandidateInput struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	YearsOfExperience *int64
	JobOfferIDs       []int64
	ConsentDate       string
}

// CandidateUpdate is a partial patch; nil fields are left untouched.
// A non-nil JobOfferIDs replaces the whole association set.
type CandidateUpdate struct {
	FirstName         *string
	LastName          *string
	Email             *string
	Phone             *string
	YearsOfExperience *int64
	JobOfferIDs       []int64
	Status            *RecruitmentStatus
	ConsentDate       *string
}

// CandidateFilter selects a page of candidates, optionally restricted to
// those assigned to a given job offer.
type CandidateFilter struct {
	Page       int
	JobOfferID *int64
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter, perPage int) ([]Candidate, int64, error)
	Update(ctx context.Context, c *Candidate, replaceJobOffers bool) error
	Delete(ctx context.Context, id string) error
	AddNote(ctx context.Context, candidateID string, note *Note) error
}

type CandidateUsecase interface {
	Create(ctx context.Context, input *CandidateInput) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, Pagination, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, id string, patch *CandidateUpdate) (*Candidate, error)
	Delete(ctx context.Context, id string) error
	AddNote(ctx context.Context, candidateID, content string, recruiterID int64) (*Note, error)
}

// LegacySync mirrors candidate lifecycle events to the legacy system.
// Calls are best-effort: failures are logged and never surfaced.
type LegacySync interface {
	CreateCandidate(ctx context.Context, name, email string) error
	DeleteCandidate(ctx context.Context, email string) error
}
