package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// Idempotency headers.
const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotencyReplayed = "Idempotency-Replayed" // "true" on replayed responses
)

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"

	defaultIdemKeyLen = 200
)

var idemKeyChars = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the key accepted by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	k := c.GetString(ctxKeyIdemKey)
	return k, k != ""
}

// IsReplay reports whether a stored result exists for the request's key.
func IsReplay(c *gin.Context) bool { return c.GetBool(ctxKeyIdemReplay) }

// IdempotencyOptions controls which header values are accepted.
type IdempotencyOptions struct {
	MaxLen  int            // default 200
	Pattern *regexp.Regexp // default ^[A-Za-z0-9._~\-:]+$
}

func (o IdempotencyOptions) accepts(key string) bool {
	max, pat := o.MaxLen, o.Pattern
	if max <= 0 {
		max = defaultIdemKeyLen
	}
	if pat == nil {
		pat = idemKeyChars
	}
	return len(key) <= max && pat.MatchString(key)
}

// IdempotencyLookup reports whether an unexpired result is stored for key in
// scope. Expiry is decided by the lookup using now.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyScopes maps a route pattern such as "/api/chat-history" to the
// scope its keys live in.
type IdempotencyScopes map[string]string

// IdempotencyValidator rejects malformed Idempotency-Key headers with
//
//	400 {"request_id": "...", "code": "bad_idempotency_key", "error": "invalid Idempotency-Key"}
//
// and stashes accepted keys for GetIdempotencyKey. On routes listed in
// scopes it asks lookup whether the key was already used; hits are flagged
// for IsReplay and exempted from rate limiting. Serving the stored result is
// left to the handler. A failing lookup is logged and treated as a miss.
func IdempotencyValidator(opts IdempotencyOptions, scopes IdempotencyScopes, lookup IdempotencyLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		switch {
		case key == "":
			c.Next()
			return
		case !opts.accepts(key):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "bad_idempotency_key",
				"error":      "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		scope, scoped := scopes[c.FullPath()]
		if scoped && lookup != nil {
			hit, err := lookup(c.Request.Context(), scope, key, time.Now().UTC())
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
			case hit:
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}
