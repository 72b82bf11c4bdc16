package handlers

import (
	"net/http"
	"time"

	"securefinance-backend/models"
	"securefinance-backend/repository"
	"securefinance-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler handles HTTP requests for document requests and dispatches
type RequestHandler struct {
	requestRepo     *repository.DocumentRequestRepository
	clientRepo      *repository.ClientRepository
	assignmentRepo  *repository.AssignmentRepository
	categoryRepo    *repository.CategoryRepository
	ticketRepo      *repository.TicketRepository
	dispatchService *service.DispatchService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestRepo *repository.DocumentRequestRepository, clientRepo *repository.ClientRepository, assignmentRepo *repository.AssignmentRepository, categoryRepo *repository.CategoryRepository, ticketRepo *repository.TicketRepository, dispatchService *service.DispatchService) *RequestHandler {
	return &RequestHandler{
		requestRepo:     requestRepo,
		clientRepo:      clientRepo,
		assignmentRepo:  assignmentRepo,
		categoryRepo:    categoryRepo,
		ticketRepo:      ticketRepo,
		dispatchService: dispatchService,
	}
}

// ListRequests handles GET /api/clients/:id/requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	requests, err := h.requestRepo.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(requests))
}

// CreateRequestRequest represents the request body for creating a document request
type CreateRequestRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	CreatedBy   string `json:"created_by" binding:"required"`
}

// CreateRequest handles POST /api/clients/:id/requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	var req CreateRequestRequest
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

	request := &models.DocumentRequest{
		ClientID:    clientID,
		Title:       req.Title,
		Description: optString(req.Description),
		Deadline:    deadline,
		Status:      models.RequestPending,
		CreatedBy:   createdBy,
	}
	if err := h.requestRepo.Create(c.Request.Context(), request); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(request))
}

// DeleteRequest handles DELETE /api/requests/:id
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid request ID format"))
		return
	}

	if err := h.requestRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DispatchRequest represents the request body for a dispatch
type DispatchRequest struct {
	Preface   string `json:"preface"`
	ReplyTo   string `json:"reply_to"`
	CreatedBy string `json:"created_by" binding:"required"`
}

// Dispatch handles POST /api/clients/:id/dispatch. It loads one snapshot of
// the client's assignments, categories and requests, mails the consolidated
// document request, and records a ticket as the notification trail.
func (h *RequestHandler) Dispatch(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	var req DispatchRequest
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

	client, err := h.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	assignments, err := h.assignmentRepo.ListByClientID(ctx, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	categories, err := h.categoryRepo.List(ctx, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	requests, err := h.requestRepo.ListByClientID(ctx, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	result, err := h.dispatchService.SendDocumentRequest(ctx, service.SendDocumentRequestRequest{
		Client:      client,
		Assignments: assignments,
		Categories:  categories,
		Requests:    requests,
		Preface:     req.Preface,
		ReplyTo:     req.ReplyTo,
		Now:         time.Now(),
	})
	if err != nil {
		switch err {
		case service.ErrNoContactEmail:
			c.JSON(http.StatusBadRequest, errorBody("NO_EMAIL", err.Error()))
		case service.ErrNothingToRequest:
			c.JSON(http.StatusBadRequest, errorBody("NOTHING_TO_REQUEST", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorBody("DISPATCH_FAILED", err.Error()))
		}
		return
	}

	// Notification trail; a failing ticket insert does not undo the dispatch.
	ticket := &models.Ticket{
		ClientID:    clientID,
		Subject:     "Documentverzoek verstuurd",
		Description: dispatchTicketDescription(result),
		Status:      models.TicketOpen,
		Priority:    models.PriorityNormal,
		CreatedBy:   createdBy,
	}
	if err := h.ticketRepo.Create(ctx, ticket); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result,
			"warning": "Dispatch geslaagd, maar notificatie kon niet worden opgeslagen: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, successBody(result))
}

func dispatchTicketDescription(result *service.SendDocumentRequestResult) string {
	if result.Simulated {
		return "Documentverzoek gesimuleerd verstuurd (test-modus)."
	}
	return "Documentverzoek per email verstuurd."
}
