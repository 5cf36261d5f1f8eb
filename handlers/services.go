package handlers

import (
	"errors"
	"net/http"

	requestRepo "concierge/database/repository/servicerequest"
	"concierge/models"
	"concierge/services/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceRequestHandler serves the service request endpoints.
type ServiceRequestHandler struct {
	Repo     requestRepo.ServiceRequestRepository
	Notifier realtime.Notifier
	Logger   *zap.Logger
}

// NewServiceRequestHandler returns a ServiceRequestHandler.
func NewServiceRequestHandler(repo requestRepo.ServiceRequestRepository, notifier realtime.Notifier, logger *zap.Logger) *ServiceRequestHandler {
	return &ServiceRequestHandler{Repo: repo, Notifier: notifier, Logger: logger}
}

type createServiceRequestRequest struct {
	SessionID   string `json:"sessionId"`
	RoomNumber  int    `json:"roomNumber" binding:"required"`
	RequestType string `json:"requestType" binding:"required"`
	Details     string `json:"details" binding:"required"`
}

// CreateServiceRequest handles POST /api/services.
func (h *ServiceRequestHandler) CreateServiceRequest(c *gin.Context) {
	var req createServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service request payload", "error": err.Error()})
		return
	}

	created, err := h.Repo.Create(c.Request.Context(), models.ServiceRequest{
		SessionID:   req.SessionID,
		RoomNumber:  req.RoomNumber,
		RequestType: req.RequestType,
		Details:     req.Details,
		Status:      models.RequestPending,
	})
	if err != nil {
		h.Logger.Error("failed to create service request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create service request", "error": err.Error()})
		return
	}

	h.Notifier.Broadcast(models.EventNewRequest, created)
	h.Logger.Info("service request created", zap.String("requestId", created.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Service request created!", "data": created})
}

// ListServiceRequests handles GET /api/services, newest first.
func (h *ServiceRequestHandler) ListServiceRequests(c *gin.Context) {
	requests, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list service requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch service requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// UpdateServiceRequest handles PATCH /api/services/:id. The status overwrite
// is unconditional: staff normally move a request Pending -> In Progress ->
// Completed, but no transition check is enforced here.
func (h *ServiceRequestHandler) UpdateServiceRequest(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}
	if !models.ValidRequestStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown status: " + req.Status})
		return
	}

	updated, err := h.Repo.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, requestRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service request not found."})
		return
	}
	if err != nil {
		h.Logger.Error("failed to update service request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update service request"})
		return
	}

	h.Notifier.Broadcast(models.EventRequestUpdated, updated)
	c.JSON(http.StatusOK, updated)
}
