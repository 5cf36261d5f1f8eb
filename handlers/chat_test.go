package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"concierge/models"
	"concierge/services/concierge"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService scripts concierge outcomes for handler tests.
type stubService struct {
	reply      string
	replyErr   error
	history    []models.Turn
	historyErr error
	faq        *models.FAQ
	faqErr     error
	turn       *models.Turn
	pingErr    error
	guestCtx   *models.GuestContext
}

func (s *stubService) HandleMessage(ctx context.Context, sessionID, message string) (string, error) {
	return s.reply, s.replyErr
}

func (s *stubService) ProactivePing(ctx context.Context, sessionID, promptType string) (*models.Turn, error) {
	return s.turn, s.pingErr
}

func (s *stubService) GuestContext(ctx context.Context, sessionID string) (*models.GuestContext, error) {
	return s.guestCtx, nil
}

func (s *stubService) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return s.history, s.historyErr
}

func (s *stubService) SearchFAQ(ctx context.Context, query string) (*models.FAQ, error) {
	return s.faq, s.faqErr
}

func chatRouter(svc concierge.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/chat", h.Chat)
	r.GET("/api/history/:sessionId", h.History)
	r.GET("/api/context/:sessionId", h.GuestContext)
	r.GET("/api/faqs/search", h.SearchFAQs)
	r.POST("/api/proactive-ping", h.ProactivePing)
	return r
}

func TestChatRequiresMessageAndSession(t *testing.T) {
	r := chatRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message and sessionId are required")
}

func TestChatReturnsReply(t *testing.T) {
	r := chatRouter(&stubService{reply: "The pool opens at 8 AM."})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"message": "pool hours?", "sessionId": "sess-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply": "The pool opens at 8 AM."}`, w.Body.String())
}

func TestChatServiceFailure(t *testing.T) {
	r := chatRouter(&stubService{replyErr: errors.New("model unavailable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"message": "hi", "sessionId": "sess-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong with the AI chat.")
}

func TestHistoryEmptyForNewSession(t *testing.T) {
	r := chatRouter(&stubService{history: []models.Turn{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/fresh-session", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchFAQsMissingQuery(t *testing.T) {
	r := chatRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/faqs/search", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFAQsNoMatch(t *testing.T) {
	r := chatRouter(&stubService{faqErr: concierge.ErrNoFAQMatch})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/faqs/search?query=parking", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No relevant FAQ found.")
}

func TestProactivePingWithoutContext(t *testing.T) {
	r := chatRouter(&stubService{pingErr: concierge.ErrNoReminderContext})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/proactive-ping",
		strings.NewReader(`{"sessionId": "sess-1", "promptType": "checkout_reminder"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "checkout_reminder")
}
