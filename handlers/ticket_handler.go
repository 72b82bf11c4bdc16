package handlers

import (
	"net/http"

	"securefinance-backend/models"
	"securefinance-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles HTTP requests for client messages
type TicketHandler struct {
	ticketRepo *repository.TicketRepository
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketRepo *repository.TicketRepository) *TicketHandler {
	return &TicketHandler{ticketRepo: ticketRepo}
}

// ListMessages handles GET /api/clients/:id/messages
func (h *TicketHandler) ListMessages(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	tickets, err := h.ticketRepo.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(tickets))
}

// CreateMessageRequest represents the request body for creating a message
type CreateMessageRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"created_by" binding:"required"`
}

// CreateMessage handles POST /api/clients/:id/messages
func (h *TicketHandler) CreateMessage(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_USER_ID", "Invalid created_by format"))
		return
	}

	priority := models.PriorityNormal
	if req.Priority != "" {
		priority = models.TicketPriority(req.Priority)
	}

	ticket := &models.Ticket{
		ClientID:    clientID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.TicketOpen,
		Priority:    priority,
		CreatedBy:   createdBy,
	}
	if err := h.ticketRepo.Create(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(ticket))
}
