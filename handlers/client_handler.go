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

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	clientRepo     *repository.ClientRepository
	assignmentRepo *repository.AssignmentRepository
	categoryRepo   *repository.CategoryRepository
	inviteService  *service.InviteService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientRepo *repository.ClientRepository, assignmentRepo *repository.AssignmentRepository, categoryRepo *repository.CategoryRepository, inviteService *service.InviteService) *ClientHandler {
	return &ClientHandler{
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		categoryRepo:   categoryRepo,
		inviteService:  inviteService,
	}
}

// ClientRequest represents the request body for creating or updating a client
type ClientRequest struct {
	CompanyName      string `json:"company_name" binding:"required"`
	ContactPerson    string `json:"contact_person" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	PostalCode       string `json:"postal_code"`
	City             string `json:"city"`
	KvkNumber        string `json:"kvk_number"`
	BtwNumber        string `json:"btw_number"`
	SubscriptionType string `json:"subscription_type"`
}

// ListClients handles GET /api/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientRepo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(clients))
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	subscription := models.SubscriptionAbonnement
	if req.SubscriptionType != "" {
		subscription = models.SubscriptionType(req.SubscriptionType)
	}

	client := &models.Client{
		CompanyName:      req.CompanyName,
		ContactPerson:    req.ContactPerson,
		Email:            optString(req.Email),
		Phone:            optString(req.Phone),
		Address:          optString(req.Address),
		PostalCode:       optString(req.PostalCode),
		City:             optString(req.City),
		KvkNumber:        optString(req.KvkNumber),
		BtwNumber:        optString(req.BtwNumber),
		SubscriptionType: subscription,
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(client))
}

// GetClient handles GET /api/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	c.JSON(http.StatusOK, successBody(client))
}

// UpdateClient handles PUT /api/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	client.CompanyName = req.CompanyName
	client.ContactPerson = req.ContactPerson
	client.Email = optString(req.Email)
	client.Phone = optString(req.Phone)
	client.Address = optString(req.Address)
	client.PostalCode = optString(req.PostalCode)
	client.City = optString(req.City)
	client.KvkNumber = optString(req.KvkNumber)
	client.BtwNumber = optString(req.BtwNumber)
	if req.SubscriptionType != "" {
		client.SubscriptionType = models.SubscriptionType(req.SubscriptionType)
	}

	if err := h.clientRepo.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("UPDATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, successBody(client))
}

// DeactivateClient handles DELETE /api/clients/:id (soft delete)
func (h *ClientHandler) DeactivateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	if err := h.clientRepo.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DEACTIVATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetClientAlerts handles GET /api/clients/:id/alerts.
// Alerts are derived fresh from the current assignment snapshot on every
// call; nothing is cached.
func (h *ClientHandler) GetClientAlerts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	ctx := c.Request.Context()

	client, err := h.clientRepo.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	assignments, err := h.assignmentRepo.ListByClientID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	categories, err := h.categoryRepo.List(ctx, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	alerts := service.BuildClientAlerts(client, assignments, categories, time.Now())

	c.JSON(http.StatusOK, successBody(alerts))
}

// InviteClient handles POST /api/clients/:id/invite
func (h *ClientHandler) InviteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	result, err := h.inviteService.InviteClient(c.Request.Context(), service.InviteClientRequest{Client: client})
	if err != nil {
		switch err {
		case service.ErrInviteNoEmail:
			c.JSON(http.StatusBadRequest, errorBody("NO_EMAIL", err.Error()))
		case service.ErrEmailTaken:
			c.JSON(http.StatusConflict, errorBody("EMAIL_TAKEN", "Dit emailadres heeft al een account. De klant kan inloggen met bestaande gegevens."))
		default:
			c.JSON(http.StatusInternalServerError, errorBody("INVITE_FAILED", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, successBody(result))
}
