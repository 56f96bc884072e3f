package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tarumenyan/studio-backend/internal/sysutil"
)

// RedactOptions configures RedactingLogger.
type RedactOptions struct {
	// MaskHeaders are logged as "[REDACTED]" in addition to Authorization,
	// Cookie and Set-Cookie. Case-insensitive.
	MaskHeaders []string
}

var (
	// UUIDs go first so the loose phone pattern never eats their digit groups.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Matches "+62 812-3456-7890", "0361 234 5678", "(0361) 234-5678".
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// Redact scrubs UUIDs, email addresses and phone numbers from s.
func Redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// headerMask holds lower-cased header names whose values are never logged.
type headerMask map[string]bool

func newHeaderMask(extra []string) headerMask {
	m := headerMask{"authorization": true, "cookie": true, "set-cookie": true}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			m[h] = true
		}
	}
	return m
}

// dict renders h for the access log, masking listed headers and scrubbing
// the rest with Redact.
func (m headerMask) dict(h http.Header) *zerolog.Event {
	d := zerolog.Dict()
	for name, vals := range h {
		if m[strings.ToLower(name)] {
			d.Str(name, "[REDACTED]")
			continue
		}
		d.Str(name, Redact(strings.Join(vals, ", ")))
	}
	return d
}

func accessLevel(status int, errs []*gin.Error) zerolog.Level {
	switch {
	case len(errs) > 0, status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// RedactingLogger emits one access log line per request and installs the
// request-scoped logger returned by LoggerFrom (request_id, method, path).
// Bodies are never logged. 5xx responses and requests that recorded gin
// errors log at error, 4xx at warn.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	mask := newHeaderMask(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		rid := sysutil.FirstNonEmpty(GetRequestID(c), c.GetHeader(requestIDHeader))

		reqLog := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", route).
			Logger()
		c.Set(loggerKey, &reqLog)
		headers := mask.dict(c.Request.Header)

		c.Next()

		status := c.Writer.Status()
		ev := reqLog.WithLevel(accessLevel(status, c.Errors))
		if len(c.Errors) > 0 {
			ev.Str("errors", c.Errors.String())
		}
		ev.Str("user_id", c.GetString(userIDKey)).
			Str("query", truncate(Redact(c.Request.URL.RawQuery), maxQueryLogLength)).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Dict("headers", headers).
			Msg("http_request")
	}
}
