// Package search ranks short texts (FAQ questions) against a visitor's
// question by keyword overlap. An Index is immutable once built and safe for
// concurrent use.
//
// Text is folded before tokenizing: lower-cased, diacritics removed and the
// Indonesian particles -nya, -lah, -kah and -pun stripped, so "Harganya?"
// and "harga" meet. The score of a document D for query Q is the Jaccard
// similarity |Q ∩ D| / |Q ∪ D| of their token sets, in (0, 1].
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Document is one searchable text.
type Document struct {
	ID   uint
	Text string
}

// Result is a matched document and its score.
type Result struct {
	ID    uint
	Score float64
}

// IndonesianStopwords are filler words dropped from both sides. Visitors
// mostly write in Indonesian, sometimes in English.
var IndonesianStopwords = []string{
	"yang", "dan", "di", "ke", "dari", "apa", "apakah", "bagaimana", "saya", "aku",
	"kami", "kita", "anda", "kamu", "ini", "itu", "untuk", "dengan", "ada", "bisa",
	"atau", "juga", "akan", "sudah", "berapa", "mau", "ya", "tidak", "kah", "nya",
	"the", "a", "an", "is", "are", "do", "you", "i", "to", "of", "and", "what", "how",
}

// particles are clitics glued to Indonesian words. They are only stripped
// when at least minStem runes remain ("punya" stays).
var particles = []string{"nya", "lah", "kah", "pun"}

const minStem = 3

// DefaultK is used by TopK for a non-positive k.
const DefaultK = 3

// Option configures NewIndex.
type Option func(*Index)

// WithStopwords drops words (compared after folding) from documents and
// queries.
func WithStopwords(words []string) Option {
	return func(ix *Index) {
		for _, w := range words {
			if w = fold(w); w != "" {
				ix.stop[w] = struct{}{}
			}
		}
	}
}

// WithMaxDocs indexes at most n documents; n <= 0 means no cap.
func WithMaxDocs(n int) Option {
	return func(ix *Index) { ix.maxDocs = n }
}

type entry struct {
	id     uint
	tokens map[string]struct{}
	runes  int
}

// Index is a token-set index over documents.
type Index struct {
	stop    map[string]struct{}
	maxDocs int
	entries []entry
}

// NewIndex tokenizes docs. Documents with no tokens left after stop-word
// removal are skipped.
func NewIndex(docs []Document, opts ...Option) *Index {
	ix := &Index{stop: map[string]struct{}{}}
	for _, o := range opts {
		o(ix)
	}
	for _, d := range docs {
		if ix.maxDocs > 0 && len(ix.entries) >= ix.maxDocs {
			break
		}
		toks := ix.tokens(d.Text)
		if len(toks) == 0 {
			continue
		}
		ix.entries = append(ix.entries, entry{
			id:     d.ID,
			tokens: toks,
			runes:  utf8.RuneCountInString(strings.TrimSpace(d.Text)),
		})
	}
	return ix
}

// Len is the number of indexed documents.
func (ix *Index) Len() int { return len(ix.entries) }

// TopK returns up to k documents sharing at least one token with q. Ties
// go to the shorter text, then the lower ID. It returns nil when nothing
// matches.
func (ix *Index) TopK(q string, k int) []Result {
	if k <= 0 {
		k = DefaultK
	}
	qt := ix.tokens(q)
	if len(qt) == 0 || len(ix.entries) == 0 {
		return nil
	}

	type hit struct {
		Result
		runes int
	}
	var hits []hit
	for _, e := range ix.entries {
		shared := intersect(qt, e.tokens)
		if shared == 0 {
			continue
		}
		union := len(qt) + len(e.tokens) - shared
		hits = append(hits, hit{Result{e.id, float64(shared) / float64(union)}, e.runes})
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(a, b int) bool {
		ha, hb := hits[a], hits[b]
		switch {
		case ha.Score != hb.Score:
			return ha.Score > hb.Score
		case ha.runes != hb.runes:
			return ha.runes < hb.runes
		default:
			return ha.ID < hb.ID
		}
	})

	out := make([]Result, min(k, len(hits)))
	for i := range out {
		out[i] = hits[i].Result
	}
	return out
}

func (ix *Index) tokens(s string) map[string]struct{} {
	words := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = stem(w)
		if _, skip := ix.stop[w]; skip {
			continue
		}
		set[w] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// fold lower-cases s and strips combining marks ("Café" -> "cafe").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func stem(w string) string {
	for _, p := range particles {
		if base, ok := strings.CutSuffix(w, p); ok && utf8.RuneCountInString(base) >= minStem {
			return base
		}
	}
	return w
}

func intersect(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
