package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"concierge/config"
	"concierge/services/concierge"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	maxAudioBytes    = 5 * 1024 * 1024
	allowedExtension = ".wav"
	requiredRate     = 16000
)

// SpeechHandler transcribes guest voice notes and optionally feeds them
// through a chat turn in one request.
type SpeechHandler struct {
	Svc    concierge.Service
	Logger *zap.Logger
}

// NewSpeechHandler returns a SpeechHandler backed by the concierge service.
func NewSpeechHandler(svc concierge.Service, logger *zap.Logger) *SpeechHandler {
	return &SpeechHandler{Svc: svc, Logger: logger}
}

// wavFormat is the fixed-size prefix of a canonical WAV file.
type wavFormat struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func validateWav(data []byte) error {
	var hdr wavFormat
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &hdr); err != nil {
		return errors.New("invalid WAV header")
	}
	if string(hdr.RiffTag[:]) != "RIFF" || string(hdr.WaveTag[:]) != "WAVE" {
		return errors.New("not a WAV file")
	}
	if hdr.NumChannels != 1 || hdr.SampleRate != requiredRate {
		return errors.New("audio must be 16kHz mono PCM")
	}
	return nil
}

// Transcribe handles POST /api/voice/transcribe. When a sessionId form field
// is present the transcript is also processed as a chat turn and the reply is
// included in the response.
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a " + allowedExtension + " file, got " + ext})
		return
	}
	if header.Size > maxAudioBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file exceeds the 5MB limit"})
		return
	}

	audioData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file"})
		return
	}
	if err := validateWav(audioData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		h.Logger.Error("failed to initialize speech client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize speech client"})
		return
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   requiredRate,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		h.Logger.Error("speech recognition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed"})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())

	sessionID := c.PostForm("sessionId")
	if sessionID == "" || text == "" {
		c.JSON(http.StatusOK, gin.H{"transcription": text})
		return
	}

	reply, err := h.Svc.HandleMessage(ctx, sessionID, text)
	if err != nil {
		h.Logger.Error("voice chat turn failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong with the AI chat."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": text, "reply": reply})
}
