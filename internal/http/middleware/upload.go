package middleware

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const uploadKey = "upload.file"

// Accepted upload types.
var (
	ImageTypes = []string{"image/png", "image/jpg", "image/jpeg"}
	PDFTypes   = []string{"application/pdf"}
)

// UploadOptions configures FileUpload.
type UploadOptions struct {
	// Field is the multipart form field holding the file.
	Field string
	// Allowed lists accepted MIME types. Both the declared part type and the
	// sniffed content type must be in it.
	Allowed []string
	// MaxBytes caps the file size. Values <= 0 disable the check.
	MaxBytes int64
	// Message is the 400 error text for a rejected type.
	Message string
}

// UploadedFile is a validated multipart file.
type UploadedFile struct {
	Header *multipart.FileHeader
	// ContentType is the sniffed type, with image/jpg folded into image/jpeg.
	ContentType string
}

// Open opens the underlying file for reading.
func (u *UploadedFile) Open() (multipart.File, error) { return u.Header.Open() }

// FileUpload validates an optional single-file upload before the handler runs.
//
// A request without the field (or without a multipart body) passes through
// with nothing attached; handlers decide whether the file is required.
// Oversized bodies get 413, disallowed types or sizes get 400.
func FileUpload(opts UploadOptions) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(opts.Allowed))
	for _, t := range opts.Allowed {
		allowed[canonicalType(t)] = struct{}{}
	}
	msg := opts.Message
	if msg == "" {
		msg = "file type not allowed"
	}

	return func(c *gin.Context) {
		fh, err := c.FormFile(opts.Field)
		switch {
		case err == nil:
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			c.Next()
			return
		default:
			if isBodyTooLarge(err) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"request_id": GetRequestID(c),
					"code":       "payload_too_large",
					"error":      "request body too large",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "bad_request",
				"error":      "invalid multipart body",
			})
			return
		}

		if opts.MaxBytes > 0 && fh.Size > opts.MaxBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "file_too_large",
				"error":      "file exceeds the upload size limit",
			})
			return
		}

		declared := canonicalType(fh.Header.Get("Content-Type"))
		sniffed, err := sniff(fh)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Str("field", opts.Field).Msg("upload sniff failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": GetRequestID(c),
				"code":       "internal_error",
				"error":      "internal server error",
			})
			return
		}
		_, okDeclared := allowed[declared]
		_, okSniffed := allowed[sniffed]
		if !okDeclared || !okSniffed {
			LoggerFrom(c).Warn().
				Str("field", opts.Field).
				Str("declared", declared).
				Str("sniffed", sniffed).
				Msg("upload rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "unsupported_file_type",
				"error":      msg,
			})
			return
		}

		uploadBytes.WithLabelValues(opts.Field).Observe(float64(fh.Size))
		c.Set(uploadKey, &UploadedFile{Header: fh, ContentType: sniffed})
		c.Next()
	}
}

// UploadFrom returns the file validated by FileUpload, if any.
func UploadFrom(c *gin.Context) (*UploadedFile, bool) {
	v, ok := c.Get(uploadKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*UploadedFile)
	return u, ok && u != nil
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	m, err := mimetype.DetectReader(io.LimitReader(f, 3072))
	if err != nil {
		return "", err
	}
	return canonicalType(m.String()), nil
}

// isBodyTooLarge detects http.MaxBytesReader overflows, which multipart
// parsing does not always wrap.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

// canonicalType lower-cases t, drops parameters and folds image/jpg.
func canonicalType(t string) string {
	t, _, _ = strings.Cut(t, ";")
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "image/jpg" {
		return "image/jpeg"
	}
	return t
}
