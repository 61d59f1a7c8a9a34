package v1

import (
	"errors"
	"net/http"
	"strconv"

	"new-recruitment-api/internal/delivery/http/response"
	"new-recruitment-api/internal/domain"
	"new-recruitment-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", handler.Create)
		candidates.GET("", handler.List)
		candidates.GET("/:id", handler.GetByID)
		candidates.PUT("/:id", handler.Update)
		candidates.PATCH("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
		candidates.POST("/:id/note", handler.AddNote)
	}
}

// CreateCandidateRequest deliberately carries no binding rules: field
// requirements are evaluated together in the usecase so the client gets the
// full error list in a single response.
type CreateCandidateRequest struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	YearsOfExperience *int64  `json:"yearsOfExperience"`
	JobOfferIDs       []int64 `json:"jobOfferIds"`
	ConsentDate       string  `json:"consentDate"`
}

type UpdateCandidateRequest struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	YearsOfExperience *int64  `json:"yearsOfExperience"`
	JobOfferIDs       []int64 `json:"jobOfferIds"`
	Status            *string `json:"status" binding:"omitempty,oneof=new in_progress accepted rejected"`
	ConsentDate       *string `json:"consentDate"`
}

type AddNoteRequest struct {
	Content     string `json:"content"`
	RecruiterID int64  `json:"recruiterId"`
}

// bindError distinguishes a body that blew the size cap (413) from a body
// that simply failed to bind (400).
func bindError(err error) *apperror.AppError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperror.New(http.StatusRequestEntityTooLarge, "Request body too large", err)
	}
	return apperror.BadRequest(err.Error())
}

func (h *CandidateHandler) Create(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), &domain.CandidateInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		YearsOfExperience: req.YearsOfExperience,
		JobOfferIDs:       req.JobOfferIDs,
		ConsentDate:       req.ConsentDate,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Candidate added successfully",
		"candidate": candidate,
	})
}

func (h *CandidateHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	filter := domain.CandidateFilter{Page: page}
	if raw := c.Query("jobOfferId"); raw != "" {
		jobOfferID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid jobOfferId"))
			return
		}
		filter.JobOfferID = &jobOfferID
	}

	candidates, pagination, err := h.candidateUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"pagination": pagination,
	})
}

func (h *CandidateHandler) GetByID(c *gin.Context) {
	candidate, err := h.candidateUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) Update(c *gin.Context) {
	var req UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	patch := &domain.CandidateUpdate{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		YearsOfExperience: req.YearsOfExperience,
		JobOfferIDs:       req.JobOfferIDs,
		ConsentDate:       req.ConsentDate,
	}
	if req.Status != nil {
		status := domain.RecruitmentStatus(*req.Status)
		patch.Status = &status
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Candidate updated successfully",
		"candidate": candidate,
	})
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Candidate deleted successfully")
}

func (h *CandidateHandler) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	note, err := h.candidateUC.AddNote(c.Request.Context(), c.Param("id"), req.Content, req.RecruiterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note added successfully",
		"note":    note,
	})
}
