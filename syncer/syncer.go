// Package syncer refreshes the local token address file from the
// configured sources.
package syncer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/polyrabbit/erc20-tokens/exchange"
	"github.com/polyrabbit/erc20-tokens/token"
)

// Fetcher queries sources by name and returns one result per known source,
// in the order asked for.
type Fetcher interface {
	FetchAll(ctx context.Context, names []string, known exchange.KnownFunc) []*exchange.Result
}

// Store loads and persists the token address file.
type Store interface {
	Load() (token.AddressMap, error)
	Save(tokens token.AddressMap) error
}

type Config struct {
	// Sources in merge priority, the first one to know a symbol wins.
	Sources []string
	DryRun  bool
}

type SourceReport struct {
	*exchange.Result
	// Added is how many symbols this source contributed after the merge.
	Added int
}

type Report struct {
	Before  int
	After   int
	Saved   bool
	Sources []SourceReport
}

type Syncer struct {
	cfg     Config
	store   Store
	fetcher Fetcher
	logger  logrus.FieldLogger
}

func New(cfg Config, store Store, fetcher Fetcher, logger logrus.FieldLogger) *Syncer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Syncer{cfg: cfg, store: store, fetcher: fetcher, logger: logger}
}

// Run loads the token file, merges in what the sources know and writes the
// file back. Source failures only shrink what gets merged; a file that
// cannot be loaded aborts the run before anything is written.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	s.logger.Info("Downloading ERC20 token addresses...")

	tokens, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load token addresses, nothing is written")
		return nil, err
	}
	report := &Report{Before: len(tokens)}

	// Sources only read tokens while they run, the merge below starts after all of them returned
	known := func(symbol string) bool {
		_, exist := tokens[symbol]
		return exist
	}
	for _, result := range s.fetcher.FetchAll(ctx, s.cfg.Sources, known) {
		added := tokens.Merge(result.Tokens)
		s.logger.WithField("source", result.Source).Debugf("Merged %d new token(s)", added)
		report.Sources = append(report.Sources, SourceReport{Result: result, Added: added})
	}
	report.After = len(tokens)

	if s.cfg.DryRun {
		s.logger.WithField("dry_run", true).Infof("Download Complete: %d - %d", report.Before, report.After)
		return report, nil
	}
	if err := s.store.Save(tokens); err != nil {
		s.logger.WithError(err).Error("Failed to save token addresses")
		return report, err
	}
	report.Saved = true
	s.logger.Infof("Download Complete: %d - %d", report.Before, report.After)
	return report, nil
}
