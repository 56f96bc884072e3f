package handlers

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
)

func packageEngine(s stubPackages) http.Handler {
	h := New(Services{Packages: s})
	r := testEngine()
	r.GET("/packages", h.ListPackages)
	r.POST("/packages", h.CreatePackage)
	r.PUT("/packages/:id", h.UpdatePackage)
	r.DELETE("/packages/:id", h.DeletePackage)
	r.POST("/packages/upload-pdf",
		middleware.FileUpload(middleware.UploadOptions{Field: "pricelist", Allowed: middleware.PDFTypes, Message: "Hanya file PDF yang diperbolehkan"}),
		h.UploadPricelist)
	return r
}

func TestPackages_CRUD(t *testing.T) {
	var got services.PackageInput
	r := packageEngine(stubPackages{
		list: func(context.Context) ([]domain.Package, error) { return nil, errors.New("db gone") },
		create: func(_ context.Context, in services.PackageInput) (*domain.Package, error) {
			got = in
			return &domain.Package{ID: 1, Name: in.Name, Features: in.Features, Popular: in.Popular}, nil
		},
		update: func(_ context.Context, id uint, in services.PackageInput) (*domain.Package, error) {
			return nil, services.ErrNotFound
		},
		del: func(context.Context, uint) error { return nil },
	})

	w := doJSON(r, http.MethodGet, "/packages", nil)
	if e := decode[ErrorResponse](t, w); w.Code != http.StatusInternalServerError || e.Error != "db gone" {
		t.Fatalf("list error: %d %s", w.Code, w.Body.String())
	}

	req := PackageRequest{Name: "Gold", Price: "Rp 3.500.000", Features: []string{"50 foto", "album"}, Popular: true}
	w = doJSON(r, http.MethodPost, "/packages", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	want := services.PackageInput{Name: "Gold", Price: "Rp 3.500.000", Features: []string{"50 foto", "album"}, Popular: true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("forwarded %+v", got)
	}
	if p := decode[domain.Package](t, w); len(p.Features) != 2 || !p.Popular {
		t.Fatalf("body: %s", w.Body.String())
	}

	if w := doJSON(r, http.MethodPut, "/packages/8", req); w.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, "/packages/8", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
}

func TestPackages_UploadPricelist(t *testing.T) {
	var gotBody string
	var svcErr error
	r := packageEngine(stubPackages{pricelist: func(_ context.Context, up *services.Upload) (string, error) {
		if up == nil {
			return "", &services.ValidationError{Msg: "Tidak ada file yang diunggah"}
		}
		gotBody = readAll(up)
		return "/docs/Tarumenyan Pricelist.pdf", svcErr
	}})

	body, ct := formBody(t, nil, "pricelist", "harga.pdf", "application/pdf", pdfBytes)
	w := doForm(r, http.MethodPost, "/packages/upload-pdf", body, ct)
	if b := decode[SuccessResponse](t, w); w.Code != http.StatusOK || !b.Success || b.Message != "File berhasil diunggah" {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	if gotBody != string(pdfBytes) {
		t.Fatalf("body not forwarded: %q", gotBody)
	}

	body, ct = formBody(t, nil, "", "", "", nil)
	w = doForm(r, http.MethodPost, "/packages/upload-pdf", body, ct)
	if e := decode[ErrorResponse](t, w); w.Code != http.StatusBadRequest || e.Error != "Tidak ada file yang diunggah" {
		t.Fatalf("no file: %d %s", w.Code, w.Body.String())
	}

	body, ct = formBody(t, nil, "pricelist", "a.png", "image/png", pngBytes)
	w = doForm(r, http.MethodPost, "/packages/upload-pdf", body, ct)
	if e := decode[ErrorResponse](t, w); w.Code != http.StatusBadRequest || e.Error != "Hanya file PDF yang diperbolehkan" {
		t.Fatalf("png: %d %s", w.Code, w.Body.String())
	}

	svcErr = services.ErrPricelistCopy
	body, ct = formBody(t, nil, "pricelist", "harga.pdf", "application/pdf", pdfBytes)
	w = doForm(r, http.MethodPost, "/packages/upload-pdf", body, ct)
	if e := decode[ErrorResponse](t, w); w.Code != http.StatusInternalServerError || e.Error != "Gagal menyalin file" {
		t.Fatalf("copy failure: %d %s", w.Code, w.Body.String())
	}
}
