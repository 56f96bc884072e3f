package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tarumenyan/studio-backend/internal/auth"
	"github.com/tarumenyan/studio-backend/internal/chatbot"
	"github.com/tarumenyan/studio-backend/internal/config"
	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/repo"
	"github.com/tarumenyan/studio-backend/internal/services"
	"github.com/tarumenyan/studio-backend/internal/storage"
)

// --- fake upstream to satisfy services.ChatbotClient ---
type fakeBot struct {
	err    error
	online bool
}

func (f fakeBot) Send(_ context.Context, sender, message string) ([]chatbot.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []chatbot.Message{{RecipientID: sender, Text: "echo: " + message, Buttons: []chatbot.Button{}}}, nil
}

func (f fakeBot) Online() bool { return f.online }

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type testApp struct {
	r      *gin.Engine
	db     *gorm.DB
	tokens *auth.Issuer
	dir    string
}

func newTestApp(t *testing.T, bot services.ChatbotClient, mut func(*config.Config)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := storage.NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	cfg := config.Config{
		APIBasePath:    "/api",
		RateRPS:        0,
		IdempotencyTTL: time.Hour,
		Threshold:      0.3,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
		Upload: config.UploadConfig{
			Backend:           "local",
			Dir:               dir,
			PublicPrefix:      "/uploads",
			DocumentsDir:      t.TempDir(),
			PricelistFilename: "Tarumenyan Pricelist.pdf",
			MaxBodyBytes:      1 << 20,
			MaxUploadBytes:    1 << 20,
		},
	}
	if mut != nil {
		mut(&cfg)
	}

	app := &testApp{r: gin.New(), db: newTestDB(t), tokens: auth.NewIssuer("test-secret", time.Hour), dir: dir}
	deps := Deps{DB: app.db, Store: store, Tokens: app.tokens}
	if bot != nil {
		deps.Chatbot = bot
	}
	RegisterRoutes(app.r, deps, cfg)
	return app
}

func (a *testApp) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := a.tokens.Sign(1, "Tester", "tester@example.com", role)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func (a *testApp) do(method, path, token string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	var rdr *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_Health_Metrics_CORS_Fallbacks(t *testing.T) {
	app := newTestApp(t, nil, nil)

	w := app.do(http.MethodGet, "/health", "", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing request id or security headers: %v", w.Header())
	}
	if w.Header().Get("Cache-Control") != "" {
		t.Fatalf("health should be cacheable by default: %v", w.Header())
	}

	w = app.do(http.MethodGet, "/metrics", "", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d", w.Code)
	}

	w = app.do(http.MethodGet, "/nope", "", nil, nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("NoRoute: %d %s", w.Code, w.Body.String())
	}

	w = app.do(http.MethodPatch, "/api/faq", "", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("NoMethod: %d %s", w.Code, w.Body.String())
	}

	// chatbot routes only exist with an upstream
	if w := app.do(http.MethodGet, "/api/rasa/status", "", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("rasa without upstream: %d", w.Code)
	}
}

func TestRegisterRoutes_CORSAllowlist(t *testing.T) {
	app := newTestApp(t, nil, func(c *config.Config) {
		c.CORS.AllowedOrigins = []string{"https://tarumenyan.example"}
	})

	w := app.do(http.MethodGet, "/api/faq", "", nil, map[string]string{"Origin": "https://tarumenyan.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://tarumenyan.example" {
		t.Fatalf("allowed origin: %q", got)
	}
	w = app.do(http.MethodGet, "/api/faq", "", nil, map[string]string{"Origin": "https://evil.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin echoed: %q", got)
	}
}

func TestRegisterRoutes_AdminGate(t *testing.T) {
	app := newTestApp(t, nil, nil)
	body := map[string]string{"question": "Di mana lokasi studio?", "answer": "Di Gianyar."}

	if w := app.do(http.MethodPost, "/api/faq", "", body, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/faq", "garbage", body, nil); w.Code != http.StatusForbidden {
		t.Fatalf("bad token: %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/faq", app.token(t, domain.RoleUser), body, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user token: %d", w.Code)
	}
	w := app.do(http.MethodPost, "/api/faq", app.token(t, domain.RoleAdmin), body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin token: %d %s", w.Code, w.Body.String())
	}

	// public read sees it
	w = app.do(http.MethodGet, "/api/faq", "", nil, nil)
	var items []domain.FAQItem
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	if w.Code != http.StatusOK || len(items) != 1 || items[0].Answer != "Di Gianyar." {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	// admin-only reads
	if w := app.do(http.MethodGet, "/api/chat-history/all", "", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("history all without token: %d", w.Code)
	}
	if w := app.do(http.MethodGet, "/api/chat-history/analytics", app.token(t, domain.RoleAdmin), nil, nil); w.Code != http.StatusOK {
		t.Fatalf("analytics as admin: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_CleanupRejectsOversizedWindow(t *testing.T) {
	app := newTestApp(t, nil, nil)
	app.db.Create(&domain.ChatHistoryEntry{SessionID: "web-1", UserMessage: "halo", BotResponse: "hai", CreatedAt: time.Now().Add(-time.Hour)})
	admin := app.token(t, domain.RoleAdmin)

	if w := app.do(http.MethodDelete, "/api/chat-history/cleanup/200000", admin, nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("cleanup 200000: %d %s", w.Code, w.Body.String())
	}
	if w := app.do(http.MethodGet, "/api/chat-history/analytics?days=200000", admin, nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("analytics 200000: %d %s", w.Code, w.Body.String())
	}
	var n int64
	app.db.Model(&domain.ChatHistoryEntry{}).Count(&n)
	if n != 1 {
		t.Fatalf("rows after rejected cleanup = %d", n)
	}
}

func TestRegisterRoutes_RegisterLogin(t *testing.T) {
	app := newTestApp(t, nil, nil)

	w := app.do(http.MethodPost, "/api/register", "", map[string]string{
		"name": "Dewi", "email": "Dewi@Example.com", "password": "rahasia1",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	w = app.do(http.MethodPost, "/api/login", "", map[string]string{"email": "dewi@example.com", "password": "rahasia1"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("token response Cache-Control = %q", got)
	}
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	claims, err := app.tokens.Parse(resp.Token)
	if err != nil || claims.Role != domain.RoleUser || claims.Email != "dewi@example.com" {
		t.Fatalf("token: %v %+v", err, claims)
	}

	// a visitor token is not enough for admin routes
	if w := app.do(http.MethodDelete, "/api/faq/1", resp.Token, nil, nil); w.Code != http.StatusForbidden {
		t.Fatalf("visitor delete: %d", w.Code)
	}
}

func TestRegisterRoutes_ChatHistoryIdempotency(t *testing.T) {
	app := newTestApp(t, nil, nil)
	body := map[string]any{"session_id": "web-1", "user_message": "hai", "bot_response": "halo"}
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "turn-0001"}

	first := app.do(http.MethodPost, "/api/chat-history", "", body, hdr)
	if first.Code != http.StatusCreated || first.Header().Get(middleware.HeaderIdempotencyReplayed) != "" {
		t.Fatalf("first: %d %s", first.Code, first.Body.String())
	}
	second := app.do(http.MethodPost, "/api/chat-history", "", body, hdr)
	if second.Code != http.StatusCreated || second.Header().Get(middleware.HeaderIdempotencyReplayed) != "true" {
		t.Fatalf("replay: %d hdr=%q", second.Code, second.Header().Get(middleware.HeaderIdempotencyReplayed))
	}

	type row struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	var a, b row
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if a.Data.ID == 0 || a.Data.ID != b.Data.ID {
		t.Fatalf("replay returned another row: %d vs %d", a.Data.ID, b.Data.ID)
	}

	w := app.do(http.MethodGet, "/api/chat-history/session/web-1", "", nil, nil)
	var rows []domain.ChatHistoryEntry
	_ = json.Unmarshal(w.Body.Bytes(), &rows)
	if len(rows) != 1 {
		t.Fatalf("expected one stored turn, got %d", len(rows))
	}

	if w := app.do(http.MethodPost, "/api/chat-history", "", body, map[string]string{middleware.HeaderIdempotencyKey: "bad key!"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid key: %d", w.Code)
	}
}

func TestRegisterRoutes_GalleryUploadAndStatic(t *testing.T) {
	app := newTestApp(t, nil, nil)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Akad Nikah")
	_ = mw.WriteField("category", "wedding")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="akad.png"`)
	h.Set("Content-Type", "image/png")
	part, _ := mw.CreatePart(h)
	_, _ = part.Write(png)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/gallery", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.token(t, domain.RoleAdmin))
	w := httptest.NewRecorder()
	app.r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var item domain.GalleryItem
	_ = json.Unmarshal(w.Body.Bytes(), &item)
	if !strings.HasPrefix(item.Image, "/uploads/gallery/gallery-") || !strings.HasSuffix(item.Image, ".png") {
		t.Fatalf("image path: %q", item.Image)
	}

	w = app.do(http.MethodGet, item.Image, "", nil, nil)
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), png) {
		t.Fatalf("static: %d len=%d", w.Code, w.Body.Len())
	}

	// ETag round trip
	w = app.do(http.MethodGet, "/api/gallery", "", nil, nil)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	if w := app.do(http.MethodGet, "/api/gallery", "", nil, map[string]string{"If-None-Match": etag}); w.Code != http.StatusNotModified {
		t.Fatalf("conditional: %d", w.Code)
	}
}

func TestRegisterRoutes_Chatbot(t *testing.T) {
	app := newTestApp(t, &fakeBot{online: true}, func(c *config.Config) { c.Chatbot.RecordHistory = true })

	w := app.do(http.MethodPost, "/api/rasa", "", map[string]string{"sender": "web-9", "message": "halo"}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "echo: halo") {
		t.Fatalf("rasa: %d %s", w.Code, w.Body.String())
	}
	w = app.do(http.MethodGet, "/api/rasa/status", "", nil, nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"online":true}` {
		t.Fatalf("status: %d %s", w.Code, w.Body.String())
	}

	var n int64
	app.db.Model(&domain.ChatHistoryEntry{}).Where("session_id = ?", "web-9").Count(&n)
	if n != 1 {
		t.Fatalf("turn not recorded, rows=%d", n)
	}
}

func TestRegisterRoutes_ChatbotDownFallsBackToFAQ(t *testing.T) {
	app := newTestApp(t, &fakeBot{err: chatbot.ErrUnavailable}, nil)
	app.db.Create(&domain.FAQItem{Question: "Jam buka studio", Answer: "Setiap hari 09.00-17.00."})

	w := app.do(http.MethodPost, "/api/rasa", "", map[string]string{"sender": "web-2", "message": "jam buka studio?"}, nil)
	if w.Code != http.StatusOK || w.Header().Get("X-Chatbot-Fallback") != "true" || !strings.Contains(w.Body.String(), "09.00-17.00") {
		t.Fatalf("fallback: %d hdr=%q %s", w.Code, w.Header().Get("X-Chatbot-Fallback"), w.Body.String())
	}

	w = app.do(http.MethodPost, "/api/rasa", "", map[string]string{"sender": "web-2", "message": "zzz qqq"}, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("no match: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_ChatbotRejectionIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	t.Cleanup(upstream.Close)
	bot := chatbot.New(chatbot.Config{URL: upstream.URL, Timeout: time.Second, Attempts: 2, Backoff: time.Millisecond})

	app := newTestApp(t, bot, nil)
	app.db.Create(&domain.FAQItem{Question: "Jam buka studio", Answer: "Setiap hari 09.00-17.00."})

	// an FAQ match exists, but a rejecting upstream is not an outage
	w := app.do(http.MethodPost, "/api/rasa", "", map[string]string{"sender": "web-3", "message": "jam buka studio?"}, nil)
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), `"code":"chatbot_failed"`) {
		t.Fatalf("rejected turn: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Chatbot-Fallback") != "" {
		t.Fatalf("rejection must not fall back to FAQ")
	}
	w = app.do(http.MethodGet, "/api/rasa/status", "", nil, nil)
	if !strings.Contains(w.Body.String(), `"online":true`) {
		t.Fatalf("status after 4xx: %s", w.Body.String())
	}
}

func TestRegisterRoutes_UploadsUnderCustomPrefixSkipGzip(t *testing.T) {
	app := newTestApp(t, nil, func(c *config.Config) { c.Upload.PublicPrefix = "/files" })
	if err := os.MkdirAll(filepath.Join(app.dir, "gallery"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(app.dir, "gallery", "a.txt"), []byte(strings.Repeat("foto ", 200)), 0o644); err != nil {
		t.Fatal(err)
	}

	w := app.do(http.MethodGet, "/files/gallery/a.txt", "", nil, map[string]string{"Accept-Encoding": "gzip"})
	if w.Code != http.StatusOK {
		t.Fatalf("static under /files: %d", w.Code)
	}
	if enc := w.Header().Get("Content-Encoding"); enc != "" {
		t.Fatalf("uploads must be served as stored, got Content-Encoding %q", enc)
	}
}

func TestLimitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(8, 64))
	r.POST("/x", func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"k":"0123456789"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("json over cap: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("small json: %d", w.Code)
	}
}

func TestPathHelpers(t *testing.T) {
	if got := joinPath("/api/", "/chat-history"); got != "/api/chat-history" {
		t.Fatalf("joinPath: %q", got)
	}
	if got := joinPath("", "/chat-history"); got != "/chat-history" {
		t.Fatalf("joinPath root: %q", got)
	}
	if got := prefixOr("", "/uploads"); got != "/uploads" {
		t.Fatalf("prefixOr default: %q", got)
	}
	if got := prefixOr("/files/", "/uploads"); got != "/files" {
		t.Fatalf("prefixOr trim: %q", got)
	}
}
