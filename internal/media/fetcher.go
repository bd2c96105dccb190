// Package media downloads and caches pronunciation audio. Files are
// content-addressed by URL hash and immutable once written, so a cached file
// never needs invalidation within or across runs.
package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/sync/singleflight"
	"resty.dev/v3"

	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	acceptLanguage = "en-US,en;q=0.9"

	fileExtension  = ".mp3"
	maxAttempts    = 3
	requestTimeout = 20 * time.Second
)

// Fetcher resolves audio URLs to locally cached filenames. Concurrent requests
// for the same URL share one download; a URL that cannot be downloaded after
// bounded retries is reported absent, never as an error.
type Fetcher struct {
	httpClient *resty.Client
	limiter    *ratelimit.Limiter
	gate       *ratelimit.Gate
	cacheDir   string

	group singleflight.Group

	mu            sync.Mutex
	urlToFilename map[string]string
	emitted       []string

	// backoffUnit scales the linear retry delay; tests shrink it.
	backoffUnit time.Duration
}

func NewFetcher(cacheDir string, limiter *ratelimit.Limiter, gate *ratelimit.Gate) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept-Language", acceptLanguage)
	client.SetTimeout(requestTimeout)

	return &Fetcher{
		httpClient:    client,
		limiter:       limiter,
		gate:          gate,
		cacheDir:      cacheDir,
		urlToFilename: map[string]string{},
		backoffUnit:   time.Second,
	}
}

func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

// FilenameFor hashes a URL into its content-addressed cache filename.
func (f *Fetcher) FilenameFor(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:]) + fileExtension
}

// Resolve returns the cached filename for an audio URL, downloading it first
// if needed. The second return value reports whether the audio is available.
func (f *Fetcher) Resolve(ctx context.Context, url string) (string, bool) {
	if url == "" {
		return "", false
	}

	f.mu.Lock()
	if filename, ok := f.urlToFilename[url]; ok {
		f.mu.Unlock()
		return filename, true
	}
	f.mu.Unlock()

	result, err, _ := f.group.Do(url, func() (any, error) {
		return f.fetch(ctx, url)
	})
	if err != nil {
		slog.Default().Warn("failed to download audio",
			"url", url,
			"attempts", maxAttempts,
			"error", err)
		return "", false
	}

	filename := result.(string)
	f.mu.Lock()
	f.urlToFilename[url] = filename
	f.emitted = append(f.emitted, filepath.Join(f.cacheDir, filename))
	f.mu.Unlock()
	return filename, true
}

// Files returns the absolute paths of every audio file this run resolved, for
// the note sink to reference. Duplicates are removed.
func (f *Fetcher) Files() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]struct{}, len(f.emitted))
	files := make([]string, 0, len(f.emitted))
	for _, file := range f.emitted {
		if _, ok := seen[file]; ok {
			continue
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}
	return files
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	filename := f.FilenameFor(url)
	path := filepath.Join(f.cacheDir, filename)
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := f.gate.Enter(ctx); err != nil {
		return "", fmt.Errorf("gate.Enter > %w", err)
	}
	defer f.gate.Leave()

	if err := retry.Do(
		func() error {
			return f.download(ctx, url, path)
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			// 1x, 2x, ... linearly increasing between attempts.
			return time.Duration(n+1) * f.backoffUnit
		}),
		retry.LastErrorOnly(true),
	); err != nil {
		return "", err
	}
	return filename, nil
}

func (f *Fetcher) download(ctx context.Context, url, path string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return retry.Unrecoverable(fmt.Errorf("limiter.Wait > %w", err))
	}

	response, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d for %s", response.StatusCode(), url)
	}

	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return retry.Unrecoverable(fmt.Errorf("os.MkdirAll > %w", err))
	}

	// Write via a temporary path so a cancelled run never leaves a partial
	// audio file that would be trusted as complete on the next run.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, response.Bytes(), 0o644); err != nil {
		return retry.Unrecoverable(fmt.Errorf("os.WriteFile > %w", err))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return retry.Unrecoverable(fmt.Errorf("os.Rename > %w", err))
	}
	return nil
}
