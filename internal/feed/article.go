// Package feed fetches headlines from external news services and normalizes
// them into Articles.
package feed

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"
)

// Article is one normalized news item. Immutable once constructed.
type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time // zero when the source doesn't report it
}

// fingerprintDescRunes bounds how much of the description participates in the
// fingerprint, so trailing edits by the source don't defeat dedup.
const fingerprintDescRunes = 100

// Fingerprint returns a stable content hash of the article identity
// (title + leading description). Articles with the same title and lead are
// considered the same story.
func (a Article) Fingerprint() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.TrimSpace(a.Title)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(leadingRunes(strings.TrimSpace(a.Description), fingerprintDescRunes)))
	return strconv.FormatUint(h.Sum64(), 16)
}

func leadingRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
