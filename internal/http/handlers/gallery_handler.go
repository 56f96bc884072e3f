package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/sysutil"
)

// formValue reads a text field from the form body, falling back to the query
// string where older admin clients sent it.
func formValue(c *gin.Context, names ...string) string {
	vals := make([]string, 0, 2*len(names))
	for _, n := range names {
		vals = append(vals, c.PostForm(n))
	}
	for _, n := range names {
		vals = append(vals, c.Query(n))
	}
	return sysutil.FirstNonEmpty(vals...)
}

// ListGallery godoc
// @ID          listGallery
// @Summary     List gallery photos
// @Description Newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Gallery
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {array}   domain.GalleryItem
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /gallery [get]
func (h *Handlers) ListGallery(c *gin.Context) {
	if notModified(c, "gallery", h.gallery.Stats) {
		return
	}
	items, err := h.gallery.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateGallery godoc
// @ID          createGallery
// @Summary     Upload a gallery photo
// @Tags        Gallery
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       image     formData  file    true  "PNG or JPEG image"
// @Param       title     formData  string  true  "Title"
// @Param       category  formData  string  true  "wedding, prewedding or lainnya"  Enums(wedding, prewedding, lainnya)
// @Success     201  {object}  domain.GalleryItem
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing token"
// @Failure     403  {object}  handlers.ErrorResponse "Not an admin"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /gallery [post]
func (h *Handlers) CreateGallery(c *gin.Context) {
	img, done, err := upload(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	defer done()

	item, err := h.gallery.Create(c.Request.Context(), formValue(c, "title"), formValue(c, "category"), img)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, item)
}

// UpdateGallery godoc
// @ID          updateGallery
// @Summary     Update a gallery photo
// @Description Empty fields keep their stored value; a new image replaces the old file.
// @Tags        Gallery
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id        path      int     true   "Gallery ID"
// @Param       image     formData  file    false  "Replacement image"
// @Param       title     formData  string  false  "Title"
// @Param       category  formData  string  false  "Category"  Enums(wedding, prewedding, lainnya)
// @Success     200  {object}  domain.GalleryItem
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /gallery/{id} [put]
func (h *Handlers) UpdateGallery(c *gin.Context) {
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

	item, err := h.gallery.Update(c.Request.Context(), id, formValue(c, "title"), formValue(c, "category"), img)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, item)
}

// DeleteGallery godoc
// @ID          deleteGallery
// @Summary     Delete a gallery photo and its file
// @Tags        Gallery
// @Produce     json
// @Security    BearerAuth
// @Param       id  path      int  true  "Gallery ID"
// @Success     200 {object}  handlers.SuccessResponse
// @Failure     500 {object}  handlers.ErrorResponse "Internal error"
// @Router      /gallery/{id} [delete]
func (h *Handlers) DeleteGallery(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.gallery.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err, ErrCodeDeleteFailed)
		return
	}
	deleted(c)
}
