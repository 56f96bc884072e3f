package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

// ---------- request helpers ----------

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// formBody builds a multipart body with the given text fields and, when data
// is non-nil, one file part.
func formBody(t *testing.T, fields map[string]string, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func doForm(r http.Handler, method, path string, body *bytes.Buffer, ct string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return v
}

// readAll drains an upload so stubs can assert on its content.
func readAll(up *services.Upload) string {
	if up == nil || up.Body == nil {
		return ""
	}
	b, _ := io.ReadAll(up.Body)
	return string(b)
}

// ---------- service stubs ----------

type stubAuth struct {
	register func(ctx context.Context, name, email, password string) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (*services.LoginResult, error)
}

func (s stubAuth) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, name, email, password)
}

func (s stubAuth) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	return s.login(ctx, email, password)
}

type stubFAQ struct {
	list   func(ctx context.Context) ([]domain.FAQItem, error)
	create func(ctx context.Context, q, a string) (*domain.FAQItem, error)
	update func(ctx context.Context, id uint, q, a string) (*domain.FAQItem, error)
	del    func(ctx context.Context, id uint) error
	search func(ctx context.Context, q string, k int) ([]services.FAQMatch, error)
}

func (s stubFAQ) List(ctx context.Context) ([]domain.FAQItem, error) { return s.list(ctx) }
func (s stubFAQ) Create(ctx context.Context, q, a string) (*domain.FAQItem, error) {
	return s.create(ctx, q, a)
}
func (s stubFAQ) Update(ctx context.Context, id uint, q, a string) (*domain.FAQItem, error) {
	return s.update(ctx, id, q, a)
}
func (s stubFAQ) Delete(ctx context.Context, id uint) error { return s.del(ctx, id) }
func (s stubFAQ) Search(ctx context.Context, q string, k int) ([]services.FAQMatch, error) {
	return s.search(ctx, q, k)
}

type stubGallery struct {
	list   func(ctx context.Context) ([]domain.GalleryItem, error)
	stats  func(ctx context.Context) (int64, *time.Time, error)
	create func(ctx context.Context, title, category string, img *services.Upload) (*domain.GalleryItem, error)
	update func(ctx context.Context, id uint, title, category string, img *services.Upload) (*domain.GalleryItem, error)
	del    func(ctx context.Context, id uint) error
}

func (s stubGallery) List(ctx context.Context) ([]domain.GalleryItem, error) { return s.list(ctx) }
func (s stubGallery) Stats(ctx context.Context) (int64, *time.Time, error) {
	if s.stats == nil {
		return 0, nil, nil
	}
	return s.stats(ctx)
}
func (s stubGallery) Create(ctx context.Context, title, category string, img *services.Upload) (*domain.GalleryItem, error) {
	return s.create(ctx, title, category, img)
}
func (s stubGallery) Update(ctx context.Context, id uint, title, category string, img *services.Upload) (*domain.GalleryItem, error) {
	return s.update(ctx, id, title, category, img)
}
func (s stubGallery) Delete(ctx context.Context, id uint) error { return s.del(ctx, id) }

type stubPackages struct {
	list      func(ctx context.Context) ([]domain.Package, error)
	create    func(ctx context.Context, in services.PackageInput) (*domain.Package, error)
	update    func(ctx context.Context, id uint, in services.PackageInput) (*domain.Package, error)
	del       func(ctx context.Context, id uint) error
	pricelist func(ctx context.Context, up *services.Upload) (string, error)
}

func (s stubPackages) List(ctx context.Context) ([]domain.Package, error) { return s.list(ctx) }
func (s stubPackages) Create(ctx context.Context, in services.PackageInput) (*domain.Package, error) {
	return s.create(ctx, in)
}
func (s stubPackages) Update(ctx context.Context, id uint, in services.PackageInput) (*domain.Package, error) {
	return s.update(ctx, id, in)
}
func (s stubPackages) Delete(ctx context.Context, id uint) error { return s.del(ctx, id) }
func (s stubPackages) UploadPricelist(ctx context.Context, up *services.Upload) (string, error) {
	return s.pricelist(ctx, up)
}

type stubReviews struct {
	list   func(ctx context.Context) ([]domain.Review, error)
	stats  func(ctx context.Context) (int64, *time.Time, error)
	create func(ctx context.Context, in services.ReviewInput, img *services.Upload) (*domain.Review, error)
	update func(ctx context.Context, id uint, in services.ReviewInput, img *services.Upload) (*domain.Review, error)
	del    func(ctx context.Context, id uint) error
}

func (s stubReviews) List(ctx context.Context) ([]domain.Review, error) { return s.list(ctx) }
func (s stubReviews) Stats(ctx context.Context) (int64, *time.Time, error) {
	if s.stats == nil {
		return 0, nil, nil
	}
	return s.stats(ctx)
}
func (s stubReviews) Create(ctx context.Context, in services.ReviewInput, img *services.Upload) (*domain.Review, error) {
	return s.create(ctx, in, img)
}
func (s stubReviews) Update(ctx context.Context, id uint, in services.ReviewInput, img *services.Upload) (*domain.Review, error) {
	return s.update(ctx, id, in, img)
}
func (s stubReviews) Delete(ctx context.Context, id uint) error { return s.del(ctx, id) }

type stubHistory struct {
	create    func(ctx context.Context, in services.ChatHistoryInput, key string) (*domain.ChatHistoryEntry, bool, error)
	bySession func(ctx context.Context, sessionID string) ([]domain.ChatHistoryEntry, error)
	all       func(ctx context.Context, limit, offset int) ([]domain.ChatHistoryEntry, error)
	analytics func(ctx context.Context, days int) (*services.Analytics, error)
	cleanup   func(ctx context.Context, days int) (int64, error)
}

func (s stubHistory) Create(ctx context.Context, in services.ChatHistoryInput, key string) (*domain.ChatHistoryEntry, bool, error) {
	return s.create(ctx, in, key)
}
func (s stubHistory) BySession(ctx context.Context, sessionID string) ([]domain.ChatHistoryEntry, error) {
	return s.bySession(ctx, sessionID)
}
func (s stubHistory) All(ctx context.Context, limit, offset int) ([]domain.ChatHistoryEntry, error) {
	return s.all(ctx, limit, offset)
}
func (s stubHistory) Analytics(ctx context.Context, days int) (*services.Analytics, error) {
	return s.analytics(ctx, days)
}
func (s stubHistory) Cleanup(ctx context.Context, days int) (int64, error) {
	return s.cleanup(ctx, days)
}

type stubChatbot struct {
	reply  func(ctx context.Context, sender, message string, meta services.TurnMeta) (*services.ChatbotReply, error)
	online bool
}

func (s stubChatbot) Reply(ctx context.Context, sender, message string, meta services.TurnMeta) (*services.ChatbotReply, error) {
	return s.reply(ctx, sender, message, meta)
}
func (s stubChatbot) Online() bool { return s.online }
