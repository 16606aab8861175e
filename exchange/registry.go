package exchange

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/http"
)

type SourceProvider func(cfg *config.Config, httpClient *http.Client) Source

var providers []SourceProvider

func register(p SourceProvider) {
	providers = append(providers, p)
}

type Registry struct {
	sources       map[string]Source
	officialNames []string
	logger        logrus.FieldLogger
}

// NewRegistry creates every built-in source.
func NewRegistry(cfg *config.Config, httpClient *http.Client, logger logrus.FieldLogger) *Registry {
	sources := make([]Source, 0, len(providers))
	for _, p := range providers {
		sources = append(sources, p(cfg, httpClient))
	}
	return NewRegistryWithSources(logger, sources...)
}

func NewRegistryWithSources(logger logrus.FieldLogger, sources ...Source) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Registry{sources: make(map[string]Source), logger: logger}
	for _, source := range sources {
		upperName := strings.ToUpper(source.GetName())
		if _, exist := r.sources[upperName]; exist {
			panic(errors.Errorf("%q already exists in source registry", upperName))
		}
		r.sources[upperName] = source
		r.officialNames = append(r.officialNames, source.GetName())
	}
	return r
}

func (r *Registry) GetAllNames() []string {
	names := append([]string(nil), r.officialNames...)
	sort.Strings(names)
	return names
}

func (r *Registry) getSource(name string) Source {
	if source, ok := r.sources[strings.ToUpper(name)]; ok {
		return source
	}
	return nil
}

// FetchAll queries the named sources concurrently and waits for all of
// them. Results come back in the order of names, unknown names are skipped.
// A failed source still yields a Result, with Err set.
func (r *Registry) FetchAll(ctx context.Context, names []string, known KnownFunc) []*Result {
	// Use slice to hold the waiting chans in order to keep requested order
	waitingChans := make([]chan *Result, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		source := r.getSource(name)
		if source == nil {
			r.logger.Warnf("Unknown source %s, skipping", name)
			continue
		}
		upperName := strings.ToUpper(source.GetName())
		if seen[upperName] {
			continue
		}
		seen[upperName] = true
		waitingChans = append(waitingChans, r.fetchAsync(ctx, source, known))
	}

	results := make([]*Result, 0, len(waitingChans))
	for _, doneCh := range waitingChans {
		results = append(results, <-doneCh)
	}
	return results
}

func (r *Registry) fetchAsync(ctx context.Context, source Source, known KnownFunc) chan *Result {
	doneCh := make(chan *Result, 1)
	go func() {
		start := time.Now()
		result, err := source.FetchTokens(ctx, known)
		if result == nil {
			result = NewResult(source.GetName())
		}
		result.Elapsed = time.Since(start)
		result.Err = err

		logEntry := r.logger.WithField("source", source.GetName())
		if err != nil {
			logEntry = logEntry.WithError(err)
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				logEntry = logEntry.WithField("elapsed", result.Elapsed.String())
			}
			logEntry.Errorf("Failed to download token addresses from %s after %d page(s)", source.GetName(), result.Pages)
		} else {
			logEntry.Debugf("Got %d tokens from %d markets in %d page(s)", len(result.Tokens), result.Markets, result.Pages)
		}
		doneCh <- result
	}()
	return doneCh
}
