package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService registers and logs in accounts.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// FAQService manages FAQ entries and answers keyword searches over them.
type FAQService interface {
	List(ctx context.Context) ([]domain.FAQItem, error)
	Create(ctx context.Context, question, answer string) (*domain.FAQItem, error)
	Update(ctx context.Context, id uint, question, answer string) (*domain.FAQItem, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, k int) ([]services.FAQMatch, error)
}

// GalleryService manages portfolio photos and their files.
type GalleryService interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
	// Stats returns the row count and latest update time for ETags.
	Stats(ctx context.Context) (int64, *time.Time, error)
	Create(ctx context.Context, title, category string, img *services.Upload) (*domain.GalleryItem, error)
	Update(ctx context.Context, id uint, title, category string, img *services.Upload) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id uint) error
}

// PackageService manages price packages and the pricelist PDF.
type PackageService interface {
	List(ctx context.Context) ([]domain.Package, error)
	Create(ctx context.Context, in services.PackageInput) (*domain.Package, error)
	Update(ctx context.Context, id uint, in services.PackageInput) (*domain.Package, error)
	Delete(ctx context.Context, id uint) error
	UploadPricelist(ctx context.Context, up *services.Upload) (string, error)
}

// ReviewService manages testimonials and their optional photos.
type ReviewService interface {
	List(ctx context.Context) ([]domain.Review, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
	Create(ctx context.Context, in services.ReviewInput, img *services.Upload) (*domain.Review, error)
	Update(ctx context.Context, id uint, in services.ReviewInput, img *services.Upload) (*domain.Review, error)
	Delete(ctx context.Context, id uint) error
}

// ChatHistoryService records chatbot turns and reports on them.
type ChatHistoryService interface {
	// Create stores a turn; with a non-empty key a repeated call returns the
	// originally stored row and replayed=true.
	Create(ctx context.Context, in services.ChatHistoryInput, key string) (*domain.ChatHistoryEntry, bool, error)
	BySession(ctx context.Context, sessionID string) ([]domain.ChatHistoryEntry, error)
	All(ctx context.Context, limit, offset int) ([]domain.ChatHistoryEntry, error)
	Analytics(ctx context.Context, days int) (*services.Analytics, error)
	Cleanup(ctx context.Context, days int) (int64, error)
}

// ChatbotService proxies visitor messages to the conversational upstream.
type ChatbotService interface {
	Reply(ctx context.Context, sender, message string, meta services.TurnMeta) (*services.ChatbotReply, error)
	Online() bool
}

//
// Handler wiring
//

// Services are the dependencies of Handlers. A nil service leaves its routes
// unregistered by the router.
type Services struct {
	Auth     AuthService
	FAQ      FAQService
	Gallery  GalleryService
	Packages PackageService
	Reviews  ReviewService
	History  ChatHistoryService
	Chatbot  ChatbotService
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	auth     AuthService
	faq      FAQService
	gallery  GalleryService
	packages PackageService
	reviews  ReviewService
	history  ChatHistoryService
	chatbot  ChatbotService
}

// New constructs Handlers bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{
		auth:     s.Auth,
		faq:      s.FAQ,
		gallery:  s.Gallery,
		packages: s.Packages,
		reviews:  s.Reviews,
		history:  s.History,
		chatbot:  s.Chatbot,
	}
}

//
// Helpers
//

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// upload opens the file validated by middleware.FileUpload. It returns a nil
// Upload when the request carried none. The caller must run done.
func upload(c *gin.Context) (up *services.Upload, done func(), err error) {
	f, ok := middleware.UploadFrom(c)
	if !ok {
		return nil, func() {}, nil
	}
	r, err := f.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &services.Upload{
		Name:        f.Header.Filename,
		ContentType: f.ContentType,
		Size:        f.Header.Size,
		Body:        r,
	}, func() { _ = r.Close() }, nil
}

// notModified sets a weak ETag built from a table's row count and latest
// update, and reports whether the client's If-None-Match already matches.
// A stats failure only disables the ETag.
func notModified(c *gin.Context, resource string, stats func(context.Context) (int64, *time.Time, error)) bool {
	count, maxTS, err := stats(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("resource", resource).Msg("etag stats failed")
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	etag := fmt.Sprintf(`W/"%s:%d:%d"`, resource, count, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// Compile-time checks that the concrete services satisfy the handler contracts.
var (
	_ AuthService        = (*services.AuthService)(nil)
	_ FAQService         = (*services.FAQService)(nil)
	_ GalleryService     = (*services.GalleryService)(nil)
	_ PackageService     = (*services.PackageService)(nil)
	_ ReviewService      = (*services.ReviewService)(nil)
	_ ChatHistoryService = (*services.ChatHistoryService)(nil)
	_ ChatbotService     = (*services.ChatbotService)(nil)
)
