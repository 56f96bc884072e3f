package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
	"github.com/tarumenyan/studio-backend/internal/sysutil"
	"github.com/tarumenyan/studio-backend/internal/utils"
)

// ChatHistoryRequest is one chatbot turn as posted by the frontend.
type ChatHistoryRequest struct {
	SessionID   string   `json:"session_id"   example:"web-5f1c2a"`
	UserMessage string   `json:"user_message" example:"Berapa harga paket wedding?"`
	BotResponse string   `json:"bot_response" example:"Paket wedding mulai dari Rp 5.000.000."`
	Intent      string   `json:"intent,omitempty"     example:"tanya_harga"`
	Confidence  *float64 `json:"confidence,omitempty" example:"0.93"`
	UserIP      string   `json:"user_ip,omitempty"`
	UserAgent   string   `json:"user_agent,omitempty"`
}

// ChatHistoryCreated is the envelope of a stored turn.
type ChatHistoryCreated struct {
	Success bool                     `json:"success" example:"true"`
	Data    *domain.ChatHistoryEntry `json:"data"`
}

// CleanupResponse reports how many turns a cleanup removed.
type CleanupResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Deleted chats older than 30 days"`
	Deleted int64  `json:"deleted" example:"12"`
}

// CreateChatHistory godoc
// @ID          createChatHistory
// @Summary     Record a chatbot turn
// @Description Missing user_ip and user_agent are taken from the request. With Idempotency-Key, a retry returns the first stored row.
// @Tags        ChatHistory
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string                       false  "Client-generated key"
// @Param       body             body      handlers.ChatHistoryRequest  true   "Turn"
// @Success     201  {object}  handlers.ChatHistoryCreated
// @Header      201  {string}  Idempotency-Replayed  "true when the response is a replay"
// @Failure     400  {object}  handlers.ErrorResponse "Missing field"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat-history [post]
func (h *Handlers) CreateChatHistory(c *gin.Context) {
	var req ChatHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	in := services.ChatHistoryInput{
		SessionID:   req.SessionID,
		UserMessage: req.UserMessage,
		BotResponse: req.BotResponse,
		Intent:      req.Intent,
		Confidence:  req.Confidence,
		UserIP:      sysutil.FirstNonEmpty(req.UserIP, c.ClientIP()),
		UserAgent:   sysutil.FirstNonEmpty(req.UserAgent, c.Request.UserAgent()),
	}
	key, _ := middleware.GetIdempotencyKey(c)
	e, replayed, err := h.history.Create(c.Request.Context(), in, key)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, ChatHistoryCreated{Success: true, Data: e})
}

// ChatHistoryBySession godoc
// @ID          chatHistoryBySession
// @Summary     Turns of one session
// @Tags        ChatHistory
// @Produce     json
// @Param       session_id  path      string  true  "Session ID"
// @Success     200  {array}   domain.ChatHistoryEntry
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat-history/session/{session_id} [get]
func (h *Handlers) ChatHistoryBySession(c *gin.Context) {
	rows, err := h.history.BySession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// AllChatHistory godoc
// @ID          allChatHistory
// @Summary     Page through every turn
// @Tags        ChatHistory
// @Produce     json
// @Security    BearerAuth
// @Param       limit   query     int  false  "Page size"  default(100) maximum(1000)
// @Param       offset  query     int  false  "Rows to skip"  default(0)
// @Success     200  {array}   domain.ChatHistoryEntry
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat-history/all [get]
func (h *Handlers) AllChatHistory(c *gin.Context) {
	limit := utils.IntOr(c.Query("limit"), services.DefaultHistoryLimit)
	offset := utils.IntOr(c.Query("offset"), 0)

	rows, err := h.history.All(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// ChatAnalytics godoc
// @ID          chatAnalytics
// @Summary     Chat usage over a trailing window
// @Tags        ChatHistory
// @Produce     json
// @Security    BearerAuth
// @Param       days  query     int  false  "Window in days"  default(7)
// @Success     200  {object}  services.Analytics
// @Failure     400  {object}  handlers.ErrorResponse "Days outside 0..36500"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat-history/analytics [get]
func (h *Handlers) ChatAnalytics(c *gin.Context) {
	days := utils.IntOr(c.Query("days"), services.DefaultAnalyticsDays)

	a, err := h.history.Analytics(c.Request.Context(), days)
	if err != nil {
		failErr(c, err, ErrCodeAnalyticsFailed)
		return
	}
	ok(c, http.StatusOK, a)
}

// CleanupChatHistory godoc
// @ID          cleanupChatHistory
// @Summary     Delete turns older than N days
// @Tags        ChatHistory
// @Produce     json
// @Security    BearerAuth
// @Param       days  path      int  true  "Age in days"
// @Success     200  {object}  handlers.CleanupResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid days"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat-history/cleanup/{days} [delete]
func (h *Handlers) CleanupChatHistory(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "days must be a non-negative integer")
		return
	}

	n, err := h.history.Cleanup(c.Request.Context(), days)
	if err != nil {
		failErr(c, err, ErrCodeDeleteFailed)
		return
	}
	ok(c, http.StatusOK, CleanupResponse{
		Success: true,
		Message: fmt.Sprintf("Deleted chats older than %d days", days),
		Deleted: n,
	})
}
