package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/http"
	"github.com/polyrabbit/erc20-tokens/token"
)

type stubSource struct {
	name   string
	tokens token.AddressMap
	err    error
	// block is waited on before returning, started is closed on entry
	block   chan struct{}
	started chan struct{}
	known   KnownFunc
}

func (s *stubSource) GetName() string {
	return s.name
}

func (s *stubSource) FetchTokens(ctx context.Context, known KnownFunc) (*Result, error) {
	s.known = known
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	result := NewResult(s.name)
	for symbol, address := range s.tokens {
		result.Tokens[symbol] = address
	}
	result.Pages = 1
	return result, s.err
}

func TestRegistry_getSource(t *testing.T) {
	registry := NewRegistry(config.Default(), http.New(config.Default()), nil)

	t.Run("get non-exist source", func(t *testing.T) {
		if source := registry.getSource("Non-exist"); source != nil {
			t.Fatalf("Get a non-existing source should return nil")
		}
	})

	t.Run("get exist source", func(t *testing.T) {
		if source := registry.getSource("raDARrelay"); source == nil {
			t.Fatalf("raDARrelay source should exist")
		}
	})

	t.Run("all built-in sources are registered", func(t *testing.T) {
		assert.Equal(t, []string{"BambooRelay", "DDEX", "RadarRelay"}, registry.GetAllNames())
	})
}

func TestRegistry_FetchAll(t *testing.T) {
	t.Run("sources run concurrently and keep the requested order", func(t *testing.T) {
		// Slow can only finish once Fast has started, a sequential fetch would hang
		fastStarted := make(chan struct{})
		slow := &stubSource{name: "Slow", tokens: token.AddressMap{"A": "0x1"}, block: fastStarted}
		fast := &stubSource{name: "Fast", tokens: token.AddressMap{"B": "0x2"}, started: fastStarted}
		registry := NewRegistryWithSources(nil, slow, fast)

		done := make(chan []*Result, 1)
		go func() {
			done <- registry.FetchAll(context.Background(), []string{"Slow", "Fast"}, nil)
		}()

		var results []*Result
		select {
		case results = <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("FetchAll did not run sources concurrently")
		}
		require.Len(t, results, 2)
		assert.Equal(t, "Slow", results[0].Source)
		assert.Equal(t, "Fast", results[1].Source)
	})

	t.Run("known symbols are handed to every source", func(t *testing.T) {
		first := &stubSource{name: "First"}
		second := &stubSource{name: "Second"}
		registry := NewRegistryWithSources(nil, first, second)
		known := KnownFunc(func(symbol string) bool { return symbol == "ETH" })

		registry.FetchAll(context.Background(), []string{"First", "Second"}, known)
		for _, source := range []*stubSource{first, second} {
			require.NotNil(t, source.known, source.name)
			assert.True(t, source.known("ETH"))
			assert.False(t, source.known("DAI"))
		}
	})

	t.Run("failed source is logged and does not affect others", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		broken := &stubSource{name: "Broken", tokens: token.AddressMap{"A": "0x1"}, err: errors.New("boom")}
		good := &stubSource{name: "Good", tokens: token.AddressMap{"B": "0x2"}}
		registry := NewRegistryWithSources(logger, broken, good)

		results := registry.FetchAll(context.Background(), []string{"Broken", "Good"}, nil)
		require.Len(t, results, 2)
		assert.EqualError(t, results[0].Err, "boom")
		assert.Equal(t, token.AddressMap{"A": "0x1"}, results[0].Tokens, "partial tokens are kept")
		assert.NoError(t, results[1].Err)
		assert.Equal(t, token.AddressMap{"B": "0x2"}, results[1].Tokens)

		require.Len(t, hook.AllEntries(), 1)
		entry := hook.LastEntry()
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, "Broken", entry.Data["source"])
	})

	t.Run("unknown and duplicated names are skipped", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		good := &stubSource{name: "Good"}
		registry := NewRegistryWithSources(logger, good)

		results := registry.FetchAll(context.Background(), []string{"Good", "Nope", "GOOD"}, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "Good", results[0].Source)
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("duplicated registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRegistryWithSources(nil, &stubSource{name: "Same"}, &stubSource{name: "SAME"})
		})
	})
}
