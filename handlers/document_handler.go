package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"securefinance-backend/models"
	"securefinance-backend/repository"
	"securefinance-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

// allowedMimeType reports whether the portal accepts uploads of this type
func allowedMimeType(mimeType string) bool {
	switch mimeType {
	case "application/pdf",
		"text/plain",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"image/jpeg",
		"image/png":
		return true
	}
	return false
}

// DocumentHandler handles client document upload and retrieval
type DocumentHandler struct {
	documentRepo *repository.ClientDocumentRepository
	clientRepo   *repository.ClientRepository
	storage      storage.Storage
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentRepo *repository.ClientDocumentRepository, clientRepo *repository.ClientRepository, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		storage:      store,
	}
}

// UploadDocument handles POST /api/clients/:id/documents
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	ctx := c.Request.Context()

	if _, err := h.clientRepo.GetByID(ctx, clientID); err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Client not found"))
		return
	}

	uploadedBy, err := uuid.Parse(c.PostForm("uploaded_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid uploaded_by format"))
		return
	}

	var categoryID *uuid.UUID
	if raw := c.PostForm("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid category_id format"))
			return
		}
		categoryID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("NO_FILE", "No file provided"))
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, errorBody("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds maximum size of %d MB", maxUploadSize>>20)))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeType(mimeType) {
		c.JSON(http.StatusBadRequest, errorBody("UNSUPPORTED_TYPE",
			fmt.Sprintf("File type %s is not supported", mimeType)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("UPLOAD_FAILED", "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	documentID := uuid.New()
	storagePath, err := h.storage.Upload(ctx, clientID, documentID, fileHeader.Filename, file)
	if err != nil {
		log.Printf("Document upload failed for client %s: %v", clientID, err)
		c.JSON(http.StatusInternalServerError, errorBody("UPLOAD_FAILED", "Failed to store document"))
		return
	}

	doc := &models.ClientDocument{
		ClientID:    clientID,
		CategoryID:  categoryID,
		FileName:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: storagePath,
		UploadedBy:  uploadedBy,
	}

	if err := h.documentRepo.Create(ctx, doc); err != nil {
		// Row insert failed; remove the stored object so nothing is orphaned.
		if delErr := h.storage.Delete(ctx, storagePath); delErr != nil {
			log.Printf("Failed to clean up stored document %s: %v", storagePath, delErr)
		}
		c.JSON(http.StatusInternalServerError, errorBody("CREATE_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, successBody(doc))
}

// ListDocuments handles GET /api/clients/:id/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid client ID format"))
		return
	}

	docs, err := h.documentRepo.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("LIST_FAILED", err.Error()))
		return
	}

	if docs == nil {
		docs = []*models.ClientDocument{}
	}

	c.JSON(http.StatusOK, successBody(docs))
}

// DownloadDocument handles GET /api/documents/:id/download
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid document ID format"))
		return
	}

	ctx := c.Request.Context()

	doc, err := h.documentRepo.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Document not found"))
		return
	}

	reader, err := h.storage.Download(ctx, doc.StoragePath)
	if err != nil {
		log.Printf("Document download failed for %s: %v", doc.StoragePath, err)
		c.JSON(http.StatusInternalServerError, errorBody("DOWNLOAD_FAILED", "Failed to retrieve document"))
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	c.Header("Content-Length", strconv.FormatInt(doc.Size, 10))
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ID", "Invalid document ID format"))
		return
	}

	ctx := c.Request.Context()

	doc, err := h.documentRepo.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Document not found"))
		return
	}

	if err := h.documentRepo.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DELETE_FAILED", err.Error()))
		return
	}

	// Best effort: the row is gone, a dangling object is harmless.
	if err := h.storage.Delete(ctx, doc.StoragePath); err != nil {
		log.Printf("Failed to delete stored document %s: %v", doc.StoragePath, err)
	}

	c.JSON(http.StatusOK, successBody(gin.H{"deleted": true}))
}
