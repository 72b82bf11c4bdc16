package handlers

import (
	"net/http"

	"securefinance-backend/models"
	"securefinance-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles HTTP requests for categories, checklists and
// client document assignments
type CategoryHandler struct {
	categoryRepo   *repository.CategoryRepository
	assignmentRepo *repository.AssignmentRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo *repository.CategoryRepository, assignmentRepo *repository.AssignmentRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo:   categoryRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListCategories handles GET /api/categories?active=true
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	categories, err := h.categoryRepo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(categories))
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	CategoryType string `json:"category_type" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	Quarter      *int   `json:"quarter"`
	SortOrder    int    `json:"sort_order"`
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	category := &models.DocumentCategory{
		Name:         req.Name,
		CategoryType: models.CategoryType(req.CategoryType),
		Year:         req.Year,
		Quarter:      req.Quarter,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}

	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(category))
}

// ListChecklists handles GET /api/checklists
func (h *CategoryHandler) ListChecklists(c *gin.Context) {
	items, err := h.categoryRepo.ListChecklist(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(items))
}

// ListAssignments handles GET /api/clients/:id/assignments
func (h *CategoryHandler) ListAssignments(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	assignments, err := h.assignmentRepo.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(assignments))
}

// ToggleAssignmentRequest represents the request body for toggling an assignment
type ToggleAssignmentRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Deadline   string `json:"deadline"`
}

// ToggleAssignment handles POST /api/clients/:id/assignments/toggle.
// Membership is a row: assigning inserts it, unassigning deletes it.
func (h *CategoryHandler) ToggleAssignment(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	var req ToggleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_CATEGORY_ID", "Invalid category_id format"))
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_DEADLINE", "Deadline must be formatted as YYYY-MM-DD"))
		return
	}

	ctx := c.Request.Context()

	existing, err := h.assignmentRepo.GetByClientAndCategory(ctx, clientID, categoryID)
	if err == nil {
		if err := h.assignmentRepo.Delete(ctx, existing.ID); err != nil {
			c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"assigned": false}})
		return
	}
	if !repository.IsNotFound(err) {
		c.JSON(http.StatusInternalServerError, errorBody("LOOKUP_FAILED", err.Error()))
		return
	}

	assignment := &models.ClientDocumentAssignment{
		ClientID:   clientID,
		CategoryID: categoryID,
		Deadline:   deadline,
	}
	if err := h.assignmentRepo.Create(ctx, assignment); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"assigned": true, "assignment": assignment}})
}

// UpdateDeadlineRequest represents the request body for updating a deadline
type UpdateDeadlineRequest struct {
	Deadline string `json:"deadline"`
}

// UpdateAssignmentDeadline handles PUT /api/assignments/:id/deadline.
// An empty deadline clears it.
func (h *CategoryHandler) UpdateAssignmentDeadline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid assignment ID format"))
		return
	}

	var req UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_DEADLINE", "Deadline must be formatted as YYYY-MM-DD"))
		return
	}

	if err := h.assignmentRepo.UpdateDeadline(c.Request.Context(), id, deadline); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("UPDATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
