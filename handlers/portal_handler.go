package handlers

import (
	"net/http"

	"securefinance-backend/models"
	"securefinance-backend/repository"
	"securefinance-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PortalHandler serves the client-facing dashboard data
type PortalHandler struct {
	clientRepo     *repository.ClientRepository
	categoryRepo   *repository.CategoryRepository
	assignmentRepo *repository.AssignmentRepository
	requestRepo    *repository.DocumentRequestRepository
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(clientRepo *repository.ClientRepository, categoryRepo *repository.CategoryRepository, assignmentRepo *repository.AssignmentRepository, requestRepo *repository.DocumentRequestRepository) *PortalHandler {
	return &PortalHandler{
		clientRepo:     clientRepo,
		categoryRepo:   categoryRepo,
		assignmentRepo: assignmentRepo,
		requestRepo:    requestRepo,
	}
}

// assignedCategory is one required document category as shown to the client
type assignedCategory struct {
	Category     *models.DocumentCategory `json:"category"`
	DeadlineText string                   `json:"deadline_text"`
}

// GetPortal handles GET /api/portal/:userId. It returns the client record
// (including the externally computed completeness score), the categories
// assigned to it and its document requests — the "what do I owe" snapshot.
func (h *PortalHandler) GetPortal(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid user ID format"))
		return
	}

	ctx := c.Request.Context()

	client, err := h.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "No client linked to this user"))
		return
	}

	categories, err := h.categoryRepo.List(ctx, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	assignments, err := h.assignmentRepo.ListByClientID(ctx, client.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	requests, err := h.requestRepo.ListByClientID(ctx, client.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	byID := make(map[uuid.UUID]*models.DocumentCategory, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	assigned := make([]assignedCategory, 0, len(assignments))
	for _, a := range assignments {
		cat, ok := byID[a.CategoryID]
		if !ok {
			continue
		}
		assigned = append(assigned, assignedCategory{
			Category:     cat,
			DeadlineText: service.DeadlineText(a.Deadline),
		})
	}

	c.JSON(http.StatusOK, successBody(gin.H{
		"client":     client,
		"categories": assigned,
		"requests":   requests,
	}))
}
