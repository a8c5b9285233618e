// internal/feed/loader.go
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/yackko/neo-analyzer/internal/neo"
)

var errOffline = errors.New("offline mode")

// Source names where a feed came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

// Fetcher retrieves a raw feed for a date.
type Fetcher interface {
	Fetch(ctx context.Context, date, apiKey string) ([]byte, error)
}

// Cache stores raw feeds by date. Get reports a miss with any error.
type Cache interface {
	Get(date string) ([]byte, error)
	Put(date string, raw []byte) error
}

// Loader resolves the feed for a date from the cache, the API, and finally a
// fallback file, in that order.
type Loader struct {
	Fetcher      Fetcher
	Cache        Cache  // optional
	FallbackFile string // optional
	// ReadFallback loads FallbackFile. Defaults are wired by the caller.
	ReadFallback func(path string) ([]byte, error)
	// Refresh skips the cache lookup but still stores fresh responses.
	Refresh bool
	// Offline never calls the Fetcher.
	Offline bool

	logger log.Logger
}

// NewLoader wires a Loader. cache may be nil.
func NewLoader(logger log.Logger, fetcher Fetcher, cache Cache, fallbackFile string, readFallback func(string) ([]byte, error)) *Loader {
	return &Loader{
		Fetcher:      fetcher,
		Cache:        cache,
		FallbackFile: fallbackFile,
		ReadFallback: readFallback,
		logger:       log.With(logger, "component", "loader"),
	}
}

// Load returns the decoded feed for date and the source that served it.
func (l *Loader) Load(ctx context.Context, date, apiKey string) (neo.Feed, Source, error) {
	if l.Cache != nil && !l.Refresh {
		if raw, err := l.Cache.Get(date); err == nil {
			f, decErr := neo.DecodeFeed(raw)
			if decErr == nil {
				level.Debug(l.logger).Log("msg", "feed served from cache", "date", date)
				return f, SourceCache, nil
			}
			level.Warn(l.logger).Log("msg", "ignoring corrupt cache entry", "date", date, "err", decErr)
		}
	}

	var raw []byte
	fetchErr := errOffline
	if !l.Offline {
		raw, fetchErr = l.Fetcher.Fetch(ctx, date, apiKey)
	}
	if fetchErr == nil {
		f, err := neo.DecodeFeed(raw)
		if err == nil {
			if l.Cache != nil {
				if err := l.Cache.Put(date, raw); err != nil {
					level.Warn(l.logger).Log("msg", "failed to cache feed", "date", date, "err", err)
				}
			}
			return f, SourceAPI, nil
		}
		fetchErr = err
	}
	if errors.Is(fetchErr, context.Canceled) {
		return neo.Feed{}, "", fetchErr
	}

	if l.FallbackFile == "" || l.ReadFallback == nil {
		return neo.Feed{}, "", fmt.Errorf("failed to fetch data from NASA API: %w", fetchErr)
	}
	level.Warn(l.logger).Log("msg", "failed to fetch data from NASA API, loading data from file", "file", l.FallbackFile, "err", fetchErr)

	raw, err := l.ReadFallback(l.FallbackFile)
	if err != nil {
		return neo.Feed{}, "", fmt.Errorf("failed to fetch data from NASA API (%v) and failed to load data from file: %w", fetchErr, err)
	}
	f, err := neo.DecodeFeed(raw)
	if err != nil {
		return neo.Feed{}, "", fmt.Errorf("fallback file %s: %w", l.FallbackFile, err)
	}
	return f, SourceFallback, nil
}
