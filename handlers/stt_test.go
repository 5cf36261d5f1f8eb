package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func transcribeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSpeechHandler(&stubService{}, zap.NewNop())

	r := gin.New()
	r.POST("/api/voice/transcribe", h.Transcribe)
	return r
}

func audioUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestTranscribeRequiresAudioFile(t *testing.T) {
	r := transcribeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "audio file is required")
}

func TestTranscribeRejectsNonWavExtension(t *testing.T) {
	r := transcribeRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, audioUpload(t, "note.mp3", []byte("not audio")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".wav")
}

func TestTranscribeRejectsOversizeUpload(t *testing.T) {
	r := transcribeRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, audioUpload(t, "big.wav", make([]byte, maxAudioBytes+1)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "5MB")
}

func TestTranscribeRejectsMalformedWav(t *testing.T) {
	r := transcribeRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, audioUpload(t, "note.wav", []byte("RIFFxxxxNOTW")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeRejectsWrongSampleRate(t *testing.T) {
	r := transcribeRouter()

	// A syntactically valid header for 44.1kHz stereo audio.
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	buf.Write([]byte{0, 0, 0, 0})
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	buf.Write([]byte{16, 0, 0, 0})      // fmt chunk size
	buf.Write([]byte{1, 0})             // PCM
	buf.Write([]byte{2, 0})             // stereo
	buf.Write([]byte{0x44, 0xAC, 0, 0}) // 44100 Hz
	buf.Write(make([]byte, 8))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, audioUpload(t, "note.wav", buf.Bytes()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "16kHz mono")
}
