package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/utils"
)

const (
	defaultSearchK = 5
	maxSearchK     = 20
)

// FAQRequest is the JSON payload for creating or replacing an FAQ entry.
type FAQRequest struct {
	Question string `json:"question" example:"Berapa lama proses editing foto?"`
	Answer   string `json:"answer"   example:"Sekitar 2 minggu setelah sesi foto."`
}

// ListFAQ godoc
// @ID          listFAQ
// @Summary     List FAQ entries
// @Tags        FAQ
// @Produce     json
// @Success     200  {array}   domain.FAQItem
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /faq [get]
func (h *Handlers) ListFAQ(c *gin.Context) {
	items, err := h.faq.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// SearchFAQ godoc
// @ID          searchFAQ
// @Summary     Search FAQ entries
// @Description Ranks FAQ questions by keyword overlap with q. Scores are in [0,1].
// @Tags        FAQ
// @Produce     json
// @Param       q  query     string  true   "Search text"  example(lokasi studio)
// @Param       k  query     int     false  "Max results"  minimum(1) maximum(20) default(5)
// @Success     200  {array}   services.FAQMatch
// @Failure     400  {object}  handlers.ErrorResponse "Missing query"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /faq/search [get]
func (h *Handlers) SearchFAQ(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q is required")
		return
	}
	k := utils.Clamp(utils.IntOr(c.Query("k"), defaultSearchK), 1, maxSearchK)

	matches, err := h.faq.Search(c.Request.Context(), q, k)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSearchFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, matches)
}

// CreateFAQ godoc
// @ID          createFAQ
// @Summary     Create an FAQ entry
// @Tags        FAQ
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.FAQRequest  true  "Question and answer"
// @Success     201   {object}  domain.FAQItem
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse "Missing token"
// @Failure     403   {object}  handlers.ErrorResponse "Not an admin"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /faq [post]
func (h *Handlers) CreateFAQ(c *gin.Context) {
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	item, err := h.faq.Create(c.Request.Context(), req.Question, req.Answer)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, item)
}

// UpdateFAQ godoc
// @ID          updateFAQ
// @Summary     Replace an FAQ entry
// @Tags        FAQ
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                  true  "FAQ ID"
// @Param       body  body      handlers.FAQRequest  true  "Question and answer"
// @Success     200   {object}  domain.FAQItem
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse "Not found"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /faq/{id} [put]
func (h *Handlers) UpdateFAQ(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	item, err := h.faq.Update(c.Request.Context(), id, req.Question, req.Answer)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, item)
}

// DeleteFAQ godoc
// @ID          deleteFAQ
// @Summary     Delete an FAQ entry
// @Description Deleting a missing entry also succeeds.
// @Tags        FAQ
// @Produce     json
// @Security    BearerAuth
// @Param       id  path      int  true  "FAQ ID"
// @Success     200 {object}  handlers.SuccessResponse
// @Failure     500 {object}  handlers.ErrorResponse "Internal error"
// @Router      /faq/{id} [delete]
func (h *Handlers) DeleteFAQ(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.faq.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err, ErrCodeDeleteFailed)
		return
	}
	deleted(c)
}
