package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"new-recruitment-api/internal/domain"
	"new-recruitment-api/pkg/apperror"
	"new-recruitment-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	itemsPerPage      = 50
	legacySyncTimeout = 10 * time.Second
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	legacy   domain.LegacySync
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, legacy domain.LegacySync, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		legacy:   legacy,
		validate: validate,
	}
}

// candidateDraft is the shape validation runs against, for both fresh input
// and a merged update. YearsOfExperience stays a pointer so "missing" and
// an explicit zero are distinguishable.
type candidateDraft struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	YearsOfExperience *int64
	JobOfferIDs       []int64
	ConsentDate       string
}

// validateCandidate evaluates every rule and collects all failures; it never
// short-circuits, so clients see the complete list in one round trip.
func (u *candidateUsecase) validateCandidate(d candidateDraft) []string {
	var errs []string

	if d.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if d.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if d.Email == "" {
		errs = append(errs, "Email is required")
	}
	// Format is only checked when an email was supplied, so a missing email
	// reports a single "required" failure.
	if d.Email != "" && u.validate.Var(d.Email, "email") != nil {
		errs = append(errs, "Invalid email format")
	}
	if d.Phone == "" {
		errs = append(errs, "Phone number is required")
	}
	if d.YearsOfExperience == nil {
		errs = append(errs, "Years of experience is required")
	}
	if d.YearsOfExperience != nil && *d.YearsOfExperience < 0 {
		errs = append(errs, "Years of experience must be non-negative")
	}
	if len(d.JobOfferIDs) == 0 {
		errs = append(errs, "At least one job offer must be assigned")
	}
	if d.ConsentDate == "" {
		errs = append(errs, "Recruitment consent date is required")
	}

	return errs
}

// syncToLegacy runs a legacy mirror call on its own task with its own
// deadline. The outcome only ever reaches the log sink; it never changes the
// response or rolls back a local write.
func (u *candidateUsecase) syncToLegacy(action string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), legacySyncTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Log.Error("Legacy system sync failed", "action", action, "error", err)
		}
	}()
}

func (u *candidateUsecase) Create(ctx context.Context, input *domain.CandidateInput) (*domain.Candidate, error) {
	// Advisory duplicate check first: a known-taken email answers with a
	// conflict before field validation runs.
	existing, err := u.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Candidate with this email already exists.")
	}

	if errs := u.validateCandidate(candidateDraft{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		YearsOfExperience: input.YearsOfExperience,
		JobOfferIDs:       input.JobOfferIDs,
		ConsentDate:       input.ConsentDate,
	}); len(errs) > 0 {
		return nil, apperror.Validation("Validation failed", errs)
	}

	now := time.Now().UTC()
	candidate := &domain.Candidate{
		ID:                uuid.NewString(),
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		YearsOfExperience: *input.YearsOfExperience,
		JobOfferIDs:       input.JobOfferIDs,
		Status:            domain.StatusNew,
		ConsentDate:       input.ConsentDate,
		Notes:             []domain.Note{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	name := fmt.Sprintf("%s %s", candidate.FirstName, candidate.LastName)
	email := candidate.Email
	u.syncToLegacy("create", func(ctx context.Context) error {
		return u.legacy.CreateCandidate(ctx, name, email)
	})

	if err := u.repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// The pre-check raced another create; the store constraint is
			// the final arbiter.
			return nil, apperror.Conflict("Candidate with this email already exists.")
		}
		return nil, err
	}

	return candidate, nil
}

func (u *candidateUsecase) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, domain.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	candidates, total, err := u.repo.List(ctx, filter, itemsPerPage)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	totalPages := int((total + itemsPerPage - 1) / itemsPerPage)

	return candidates, domain.Pagination{
		CurrentPage:  filter.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: itemsPerPage,
	}, nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return candidate, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id string, patch *domain.CandidateUpdate) (*domain.Candidate, error) {
	candidate, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	if patch.Email != nil && *patch.Email != candidate.Email {
		other, err := u.repo.GetByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperror.Conflict("Email already in use")
		}
	}

	if patch.FirstName != nil {
		candidate.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		candidate.LastName = *patch.LastName
	}
	if patch.Email != nil {
		candidate.Email = *patch.Email
	}
	if patch.Phone != nil {
		candidate.Phone = *patch.Phone
	}
	if patch.YearsOfExperience != nil {
		candidate.YearsOfExperience = *patch.YearsOfExperience
	}
	if patch.Status != nil {
		candidate.Status = *patch.Status
	}
	if patch.ConsentDate != nil {
		candidate.ConsentDate = *patch.ConsentDate
	}
	replaceJobOffers := patch.JobOfferIDs != nil
	if replaceJobOffers {
		candidate.JobOfferIDs = patch.JobOfferIDs
	}
	candidate.UpdatedAt = time.Now().UTC()

	// Validate the merged record so a partial patch cannot strip a required
	// field. Years of experience is always present after the merge.
	years := candidate.YearsOfExperience
	if errs := u.validateCandidate(candidateDraft{
		FirstName:         candidate.FirstName,
		LastName:          candidate.LastName,
		Email:             candidate.Email,
		Phone:             candidate.Phone,
		YearsOfExperience: &years,
		JobOfferIDs:       candidate.JobOfferIDs,
		ConsentDate:       candidate.ConsentDate,
	}); len(errs) > 0 {
		return nil, apperror.Validation("Validation failed", errs)
	}

	if err := u.repo.Update(ctx, candidate, replaceJobOffers); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.Conflict("Email already in use")
		}
		return nil, err
	}

	return candidate, nil
}

func (u *candidateUsecase) Delete(ctx context.Context, id string) error {
	candidate, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if candidate == nil {
		return apperror.NotFound("Candidate not found")
	}

	email := candidate.Email
	u.syncToLegacy("delete", func(ctx context.Context) error {
		return u.legacy.DeleteCandidate(ctx, email)
	})

	return u.repo.Delete(ctx, id)
}

func (u *candidateUsecase) AddNote(ctx context.Context, candidateID, content string, recruiterID int64) (*domain.Note, error) {
	candidate, err := u.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	if content == "" {
		return nil, apperror.BadRequest("Note content is required")
	}

	note := &domain.Note{
		ID:          uuid.NewString(),
		Content:     content,
		RecruiterID: recruiterID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := u.repo.AddNote(ctx, candidateID, note); err != nil {
		return nil, err
	}

	return note, nil
}
