package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/services"
)

// PackageRequest is the JSON payload for creating or replacing a package.
type PackageRequest struct {
	Name        string   `json:"name"        example:"Paket Prewedding Gold"`
	Price       string   `json:"price"       example:"Rp 3.500.000"`
	Description string   `json:"description" example:"Sesi 4 jam di dua lokasi"`
	Features    []string `json:"features"    example:"50 foto edit,1 album"`
	Popular     bool     `json:"popular"`
}

func (r PackageRequest) input() services.PackageInput {
	return services.PackageInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Features:    r.Features,
		Popular:     r.Popular,
	}
}

// ListPackages godoc
// @ID          listPackages
// @Summary     List price packages
// @Tags        Packages
// @Produce     json
// @Success     200  {array}   domain.Package
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /packages [get]
func (h *Handlers) ListPackages(c *gin.Context) {
	items, err := h.packages.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreatePackage godoc
// @ID          createPackage
// @Summary     Create a price package
// @Tags        Packages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.PackageRequest  true  "Package"
// @Success     201   {object}  domain.Package
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /packages [post]
func (h *Handlers) CreatePackage(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.packages.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdatePackage godoc
// @ID          updatePackage
// @Summary     Replace a price package
// @Tags        Packages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                      true  "Package ID"
// @Param       body  body      handlers.PackageRequest  true  "Package"
// @Success     200   {object}  domain.Package
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse "Not found"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /packages/{id} [put]
func (h *Handlers) UpdatePackage(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.packages.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePackage godoc
// @ID          deletePackage
// @Summary     Delete a price package
// @Tags        Packages
// @Produce     json
// @Security    BearerAuth
// @Param       id  path      int  true  "Package ID"
// @Success     200 {object}  handlers.SuccessResponse
// @Failure     500 {object}  handlers.ErrorResponse "Internal error"
// @Router      /packages/{id} [delete]
func (h *Handlers) DeletePackage(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.packages.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err, ErrCodeDeleteFailed)
		return
	}
	deleted(c)
}

// UploadPricelist godoc
// @ID          uploadPricelist
// @Summary     Replace the pricelist PDF
// @Description Stored under a fixed name in the documents directory and served from /documents.
// @Tags        Packages
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       pricelist  formData  file  true  "PDF file"
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     400  {object}  handlers.ErrorResponse "Missing or non-PDF file"
// @Failure     500  {object}  handlers.ErrorResponse "Write or copy failed"
// @Router      /packages/upload-pdf [post]
func (h *Handlers) UploadPricelist(c *gin.Context) {
	pdf, done, err := upload(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	defer done()

	if _, err := h.packages.UploadPricelist(c.Request.Context(), pdf); err != nil {
		if errors.Is(err, services.ErrPricelistCopy) {
			fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, "Gagal menyalin file")
			return
		}
		failErr(c, err, ErrCodeUploadFailed)
		return
	}
	ok(c, http.StatusOK, SuccessResponse{Success: true, Message: "File berhasil diunggah"})
}
