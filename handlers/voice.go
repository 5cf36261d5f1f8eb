package handlers

import (
	"encoding/xml"
	"net/http"

	"concierge/services/concierge"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceHandler serves the telephony webhook. The gateway posts
// speech-to-text results as form fields and expects TwiML back.
type VoiceHandler struct {
	Svc    concierge.Service
	Logger *zap.Logger
}

// NewVoiceHandler returns a VoiceHandler backed by the concierge service.
func NewVoiceHandler(svc concierge.Service, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{Svc: svc, Logger: logger}
}

type twimlGather struct {
	XMLName       xml.Name `xml:"Gather"`
	Input         string   `xml:"input,attr"`
	Action        string   `xml:"action,attr"`
	SpeechTimeout string   `xml:"speechTimeout,attr"`
	SpeechModel   string   `xml:"speechModel,attr"`
	FinishOnKey   string   `xml:"finishOnKey,attr"`
	Say           string   `xml:"Say"`
}

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Gather  *twimlGather `xml:"Gather,omitempty"`
	Say     []string     `xml:"Say,omitempty"`
	Hangup  *struct{}    `xml:"Hangup,omitempty"`
}

func writeTwiML(c *gin.Context, resp twimlResponse) {
	b, err := xml.Marshal(resp)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/xml", append([]byte(xml.Header), b...))
}

// Answer handles POST /voice, the initial webhook for an incoming call.
func (h *VoiceHandler) Answer(c *gin.Context) {
	writeTwiML(c, twimlResponse{
		Gather: &twimlGather{
			Input:         "speech",
			Action:        "/voice/gather",
			SpeechTimeout: "3",
			SpeechModel:   "phone_call",
			FinishOnKey:   "#",
			Say:           "Welcome to the AI Concierge. Please state your request, then press the hash key.",
		},
		Say:    []string{"We didn't receive any input. Goodbye!"},
		Hangup: &struct{}{},
	})
}

// Gather handles POST /voice/gather with the caller's transcribed speech. The
// call SID doubles as the chat session identifier.
func (h *VoiceHandler) Gather(c *gin.Context) {
	speech := c.PostForm("SpeechResult")
	sessionID := c.PostForm("CallSid")

	if speech == "" {
		writeTwiML(c, twimlResponse{
			Say:    []string{"I'm sorry, I didn't hear anything. Please call back and try again."},
			Hangup: &struct{}{},
		})
		return
	}

	reply, err := h.Svc.HandleMessage(c.Request.Context(), sessionID, speech)
	if err != nil {
		h.Logger.Error("voice chat turn failed", zap.String("callSid", sessionID), zap.Error(err))
		writeTwiML(c, twimlResponse{
			Say:    []string{"Sorry, I ran into an error. Please try again later."},
			Hangup: &struct{}{},
		})
		return
	}

	writeTwiML(c, twimlResponse{
		Say:    []string{reply},
		Hangup: &struct{}{},
	})
}
