package routes

import (
	"net/http"
	"time"

	"concierge/config"
	"concierge/handlers"
	"concierge/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the guest-facing conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/chat", hb.Chat)

	api := r.Group("/api")
	{
		api.GET("/history/:sessionId", hb.History)
		api.GET("/context/:sessionId", hb.GuestContext)
		api.GET("/faqs/search", hb.SearchFAQs)
		api.POST("/proactive-ping", hb.ProactivePing)
	}
}

// RegisterBookingRoutes registers booking and service request endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/bookings", hb.CreateBooking)
		api.POST("/services", hb.CreateServiceRequest)
		api.GET("/services", hb.ListServiceRequests)

		// Status changes are staff-only.
		api.PATCH("/services/:id", middleware.StaffAuthMiddleware(), hb.UpdateServiceRequest)
	}
}

// RegisterVoiceRoutes registers the telephony webhook and transcription
// endpoints.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/voice", hb.VoiceAnswer)
	r.POST("/voice/gather", hb.VoiceGather)
	r.POST("/api/voice/transcribe", hb.Transcribe)
}

// RegisterStaffRoutes registers staff dashboard auth.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/staff/login", hb.StaffLogin)
}

// RegisterRealtimeRoutes registers the WebSocket endpoints.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	ws := r.Group("/ws")
	{
		ws.GET("/dashboard", middleware.StaffAuthMiddleware(), hb.DashboardSocket)
		ws.GET("/guest", hb.GuestSocket)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm your AI Concierge"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.Origins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterHealthRoute(r)
}
