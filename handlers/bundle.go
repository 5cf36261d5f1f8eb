// File: concierge/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Chat endpoints.
	Chat          gin.HandlerFunc
	History       gin.HandlerFunc
	GuestContext  gin.HandlerFunc
	SearchFAQs    gin.HandlerFunc
	ProactivePing gin.HandlerFunc

	// Booking endpoints.
	CreateBooking gin.HandlerFunc

	// Service request endpoints.
	CreateServiceRequest gin.HandlerFunc
	ListServiceRequests  gin.HandlerFunc
	UpdateServiceRequest gin.HandlerFunc

	// Voice endpoints.
	VoiceAnswer gin.HandlerFunc
	VoiceGather gin.HandlerFunc
	Transcribe  gin.HandlerFunc

	// Staff endpoints.
	StaffLogin gin.HandlerFunc

	// Realtime endpoints.
	DashboardSocket gin.HandlerFunc
	GuestSocket     gin.HandlerFunc
}
