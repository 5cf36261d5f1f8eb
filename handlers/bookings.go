package handlers

import (
	"net/http"
	"time"

	bookingRepo "concierge/database/repository/booking"
	"concierge/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

// NewBookingHandler returns a BookingHandler backed by the given repository.
func NewBookingHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Repo: repo, Logger: logger}
}

type createBookingRequest struct {
	UserName        string `json:"userName" binding:"required"`
	SessionID       string `json:"sessionId" binding:"required"`
	RoomNumber      int    `json:"roomNumber"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking payload", "error": err.Error()})
		return
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "checkInDate must be in YYYY-MM-DD format"})
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "checkOutDate must be in YYYY-MM-DD format"})
		return
	}

	created, err := h.Repo.Create(c.Request.Context(), models.Booking{
		UserName:        req.UserName,
		SessionID:       req.SessionID,
		RoomNumber:      req.RoomNumber,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.Logger.Error("failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking", "error": err.Error()})
		return
	}

	h.Logger.Info("booking created", zap.String("bookingId", created.ID), zap.String("sessionId", created.SessionID))
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully!", "data": created})
}
