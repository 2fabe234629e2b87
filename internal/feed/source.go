package feed

import (
	"context"
	"net/http"
	"time"
)

// Source yields candidate articles for one topic, newest first.
//
// A transport error, non-2xx status, or malformed payload is returned as an
// error; the caller treats any error as "no content this cycle". An empty
// slice with a nil error also means no content (e.g. a keyless source).
// Implementations must bound every request with a timeout.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	Candidates(ctx context.Context) ([]Article, error)
}

// fetchTimeout bounds one upstream HTTP request.
const fetchTimeout = 10 * time.Second

// maxCandidates caps how many items a source hands to the dedup scan.
const maxCandidates = 10

func newClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}
