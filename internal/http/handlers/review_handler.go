package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/services"
)

// reviewInput collects review fields from the multipart form. Both the short
// and the column names are accepted for name and service.
func reviewInput(c *gin.Context) services.ReviewInput {
	return services.ReviewInput{
		CustomerName: formValue(c, "name", "customer_name"),
		ServiceType:  formValue(c, "service", "service_type"),
		Location:     formValue(c, "location"),
		Rating:       formValue(c, "rating"),
		Comment:      formValue(c, "comment"),
		Date:         formValue(c, "date"),
	}
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List testimonials
// @Description Newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Reviews
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {array}   domain.Review
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	if notModified(c, "reviews", h.reviews.Stats) {
		return
	}
	items, err := h.reviews.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateReview godoc
// @ID          createReview
// @Summary     Create a testimonial
// @Tags        Reviews
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       image     formData  file    false  "PNG or JPEG photo"
// @Param       name      formData  string  true   "Customer name (alias customer_name)"
// @Param       service   formData  string  true   "Service (alias service_type)"
// @Param       location  formData  string  false  "Location"
// @Param       rating    formData  int     false  "1 to 5"  minimum(1) maximum(5) default(5)
// @Param       comment   formData  string  true   "Comment"
// @Param       date      formData  string  false  "YYYY-MM-DD or RFC 3339"
// @Success     201  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	img, done, err := upload(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	defer done()

	r, err := h.reviews.Create(c.Request.Context(), reviewInput(c), img)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, r)
}

// UpdateReview godoc
// @ID          updateReview
// @Summary     Update a testimonial
// @Description Empty fields keep their stored value; a new photo replaces the old file.
// @Tags        Reviews
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id        path      int     true   "Review ID"
// @Param       image     formData  file    false  "Replacement photo"
// @Param       name      formData  string  false  "Customer name"
// @Param       service   formData  string  false  "Service"
// @Param       location  formData  string  false  "Location"
// @Param       rating    formData  int     false  "1 to 5"
// @Param       comment   formData  string  false  "Comment"
// @Param       date      formData  string  false  "YYYY-MM-DD or RFC 3339"
// @Success     200  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews/{id} [put]
func (h *Handlers) UpdateReview(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	img, done, err := upload(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	defer done()

	r, err := h.reviews.Update(c.Request.Context(), id, reviewInput(c), img)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a testimonial and its photo
// @Tags        Reviews
// @Produce     json
// @Security    BearerAuth
// @Param       id  path      int  true  "Review ID"
// @Success     200 {object}  handlers.SuccessResponse
// @Failure     500 {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews/{id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err, ErrCodeDeleteFailed)
		return
	}
	deleted(c)
}
