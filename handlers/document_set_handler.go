package handlers

import (
	"net/http"

	"securefinance-backend/models"
	"securefinance-backend/repository"
	"securefinance-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentSetHandler handles HTTP requests for document set templates
type DocumentSetHandler struct {
	setRepo    *repository.DocumentSetRepository
	setService *service.DocumentSetService
}

// NewDocumentSetHandler creates a new document set handler
func NewDocumentSetHandler(setRepo *repository.DocumentSetRepository, setService *service.DocumentSetService) *DocumentSetHandler {
	return &DocumentSetHandler{
		setRepo:    setRepo,
		setService: setService,
	}
}

// setWithItems is the list/detail representation of a set
type setWithItems struct {
	*models.DocumentSet
	Items []*models.DocumentSetItem `json:"items"`
}

// ListSets handles GET /api/sets
func (h *DocumentSetHandler) ListSets(c *gin.Context) {
	ctx := c.Request.Context()

	sets, err := h.setRepo.ListSets(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	items, err := h.setRepo.ListItems(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	itemsBySet := make(map[uuid.UUID][]*models.DocumentSetItem)
	for _, item := range items {
		itemsBySet[item.SetID] = append(itemsBySet[item.SetID], item)
	}

	result := make([]setWithItems, 0, len(sets))
	for _, set := range sets {
		result = append(result, setWithItems{DocumentSet: set, Items: itemsBySet[set.ID]})
	}

	c.JSON(http.StatusOK, successBody(result))
}

// GetSet handles GET /api/sets/:id
func (h *DocumentSetHandler) GetSet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid set ID format"))
		return
	}

	ctx := c.Request.Context()

	set, err := h.setRepo.GetSetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Document set not found"))
		return
	}

	items, err := h.setRepo.ListItemsBySetID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(setWithItems{DocumentSet: set, Items: items}))
}

// CreateSetRequest represents the request body for creating a set with its items
type CreateSetRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by" binding:"required"`
	Items       []struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	} `json:"items"`
}

// CreateSet handles POST /api/sets. Items are created in the order given;
// inserts are per-row without a transaction, so a mid-sequence failure can
// leave a partially filled set behind.
func (h *DocumentSetHandler) CreateSet(c *gin.Context) {
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_USER_ID", "Invalid created_by format"))
		return
	}

	ctx := c.Request.Context()

	set := &models.DocumentSet{
		Name:        req.Name,
		Description: optString(req.Description),
		CreatedBy:   createdBy,
	}
	if err := h.setRepo.CreateSet(ctx, set); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	items := make([]*models.DocumentSetItem, 0, len(req.Items))
	for i, reqItem := range req.Items {
		item := &models.DocumentSetItem{
			SetID:       set.ID,
			Title:       reqItem.Title,
			Description: optString(reqItem.Description),
			SortOrder:   i,
		}
		if err := h.setRepo.CreateItem(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, errorBody("CREATE_ITEM_FAILED", err.Error()))
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusCreated, successBody(setWithItems{DocumentSet: set, Items: items}))
}

// DeleteSet handles DELETE /api/sets/:id. Items go first; the schema does
// not cascade.
func (h *DocumentSetHandler) DeleteSet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid set ID format"))
		return
	}

	ctx := c.Request.Context()

	if err := h.setRepo.DeleteItemsBySetID(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
		return
	}
	if err := h.setRepo.DeleteSet(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateSetItemRequest represents the request body for adding an item to a set
type CreateSetItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// CreateSetItem handles POST /api/sets/:id/items
func (h *DocumentSetHandler) CreateSetItem(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid set ID format"))
		return
	}

	var req CreateSetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	item := &models.DocumentSetItem{
		SetID:       setID,
		Title:       req.Title,
		Description: optString(req.Description),
		SortOrder:   req.SortOrder,
	}
	if err := h.setRepo.CreateItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(item))
}

// DeleteSetItem handles DELETE /api/set-items/:id
func (h *DocumentSetHandler) DeleteSetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid item ID format"))
		return
	}

	if err := h.setRepo.DeleteItem(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ApplySetRequest represents the request body for applying a set to a client
type ApplySetRequest struct {
	Deadline  string `json:"deadline"`
	CreatedBy string `json:"created_by" binding:"required"`
}

// ApplySet handles POST /api/clients/:id/sets/:setId/apply
func (h *DocumentSetHandler) ApplySet(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	setID, err := uuid.Parse(c.Param("setId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_SET_ID", "Invalid set ID format"))
		return
	}

	var req ApplySetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_USER_ID", "Invalid created_by format"))
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_DEADLINE", "Deadline must be formatted as YYYY-MM-DD"))
		return
	}

	result, err := h.setService.ApplySet(c.Request.Context(), service.ApplySetRequest{
		SetID:     setID,
		ClientID:  clientID,
		Deadline:  deadline,
		CreatedBy: createdBy,
	})
	if err != nil {
		switch err {
		case service.ErrEmptySet:
			c.JSON(http.StatusBadRequest, errorBody("EMPTY_SET", err.Error()))
		case service.ErrSetNotFound:
			c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorBody("APPLY_FAILED", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, successBody(result))
}
