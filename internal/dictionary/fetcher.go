package dictionary

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
	"resty.dev/v3"
)

//go:generate mockgen -source=fetcher.go -destination=../mocks/dictionary/mock_fetcher.go -package=mock_dictionary

// PageFetcher retrieves one dictionary page as raw HTML. Implementations are
// responsible for throttling their own requests.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// PageParser is the single capability the resolver needs from a page-structure
// adapter. Page-format changes stay isolated behind it.
type PageParser interface {
	// ParseEntry extracts one entry from a page, or an error when the page
	// is not recognizable as a dictionary entry.
	ParseEntry(rawHTML []byte) (ParsedEntry, error)
	// ParseSubSenses extracts the senses from a phrasal verb's own page.
	ParseSubSenses(rawHTML []byte) []Sense
}

// ParsedEntry is an Entry plus the phrasal-verb links discovered on the page,
// which the resolver follows with nested fetches.
type ParsedEntry struct {
	Entry            Entry
	PhrasalVerbLinks []PhrasalVerbLink
}

// PhrasalVerbLink is a (verb, URL) pair parsed from the parent entry page.
type PhrasalVerbLink struct {
	Verb string
	URL  string
}

const (
	// Browser-like headers keep the dictionary site from rejecting requests.
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	acceptLanguage = "en-US,en;q=0.9"

	defaultRequestTimeout = 20 * time.Second
)

// HTTPFetcher fetches pages over HTTP behind a shared rate limiter.
type HTTPFetcher struct {
	httpClient *resty.Client
	limiter    *ratelimit.Limiter
}

func NewHTTPFetcher(limiter *ratelimit.Limiter) *HTTPFetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept-Language", acceptLanguage)
	client.SetTimeout(defaultRequestTimeout)

	return &HTTPFetcher{
		httpClient: client,
		limiter:    limiter,
	}
}

func (f *HTTPFetcher) Close() error {
	return f.httpClient.Close()
}

// FetchPage waits for the rate limiter, then issues a single GET. A non-200
// status is an error; callers decide whether that means "absent" or failure.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("limiter.Wait > %w", err)
	}

	response, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d for %s", response.StatusCode(), url)
	}
	return response.Bytes(), nil
}
