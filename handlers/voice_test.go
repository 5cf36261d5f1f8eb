package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func voiceRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVoiceHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/voice", h.Answer)
	r.POST("/voice/gather", h.Gather)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestVoiceAnswerGathersSpeech(t *testing.T) {
	r := voiceRouter(&stubService{})

	w := postForm(r, "/voice", url.Values{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<Gather")
	assert.Contains(t, body, `input="speech"`)
	assert.Contains(t, body, `action="/voice/gather"`)
}

func TestVoiceGatherSpeaksReply(t *testing.T) {
	r := voiceRouter(&stubService{reply: "The pool opens at 8 AM."})

	w := postForm(r, "/voice/gather", url.Values{
		"SpeechResult": {"what are the pool hours"},
		"CallSid":      {"CA123"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<Say>The pool opens at 8 AM.</Say>")
	assert.Contains(t, body, "<Hangup>")
}

func TestVoiceGatherWithoutSpeech(t *testing.T) {
	r := voiceRouter(&stubService{})

	w := postForm(r, "/voice/gather", url.Values{"CallSid": {"CA123"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "didn't hear anything")
}

func TestVoiceGatherChatFailure(t *testing.T) {
	r := voiceRouter(&stubService{replyErr: errors.New("model unavailable")})

	w := postForm(r, "/voice/gather", url.Values{
		"SpeechResult": {"hello"},
		"CallSid":      {"CA123"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ran into an error")
}
