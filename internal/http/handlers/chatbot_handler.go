package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/chatbot"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
)

// HeaderChatbotFallback marks replies answered from the FAQ table.
const HeaderChatbotFallback = "X-Chatbot-Fallback"

// RasaRequest is a visitor message for the chatbot.
type RasaRequest struct {
	Sender  string `json:"sender"  example:"web-5f1c2a"`
	Message string `json:"message" example:"Halo, studio buka jam berapa?"`
}

// ChatbotStatus reports the upstream's last known state.
type ChatbotStatus struct {
	Online bool `json:"online" example:"true"`
}

// Rasa godoc
// @ID          rasa
// @Summary     Send a message to the chatbot
// @Description Forwards to the Rasa REST webhook. While it is down, a close FAQ answer is returned with X-Chatbot-Fallback: true.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RasaRequest  true  "Message"
// @Success     200   {array}   chatbot.Message
// @Header      200   {string}  X-Chatbot-Fallback  "true when answered from the FAQ"
// @Failure     400   {object}  handlers.ErrorResponse "Missing sender or message"
// @Failure     502   {object}  handlers.ErrorResponse "Upstream error"
// @Failure     503   {object}  handlers.ErrorResponse "Chatbot unavailable"
// @Router      /rasa [post]
func (h *Handlers) Rasa(c *gin.Context) {
	var req RasaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	meta := services.TurnMeta{UserIP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	reply, err := h.chatbot.Reply(c.Request.Context(), req.Sender, req.Message, meta)
	var ve *services.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, ve.Msg)
		return
	case errors.Is(err, services.ErrChatbotUnavailable):
		middleware.ObserveChatbotReply(middleware.OutcomeUnavailable)
		failErr(c, err, ErrCodeChatbotUnavailable)
		return
	default:
		middleware.ObserveChatbotReply(middleware.OutcomeError)
		fail(c, http.StatusBadGateway, ErrCodeChatbotFailed, err.Error())
		return
	}

	if reply.Fallback {
		middleware.ObserveChatbotReply(middleware.OutcomeFallback)
		c.Header(HeaderChatbotFallback, "true")
	} else {
		middleware.ObserveChatbotReply(middleware.OutcomeUpstream)
	}
	msgs := reply.Messages
	if msgs == nil {
		msgs = []chatbot.Message{}
	}
	ok(c, http.StatusOK, msgs)
}

// RasaStatus godoc
// @ID          rasaStatus
// @Summary     Chatbot availability
// @Tags        Chatbot
// @Produce     json
// @Success     200  {object}  handlers.ChatbotStatus
// @Router      /rasa/status [get]
func (h *Handlers) RasaStatus(c *gin.Context) {
	ok(c, http.StatusOK, ChatbotStatus{Online: h.chatbot.Online()})
}
