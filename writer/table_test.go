package writer

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/polyrabbit/erc20-tokens/exchange"
	"github.com/polyrabbit/erc20-tokens/syncer"
	"github.com/polyrabbit/erc20-tokens/token"
)

func TestTableWriter_Render(t *testing.T) {
	ok := exchange.NewResult("RadarRelay")
	ok.Tokens = token.AddressMap{"ZRX": "0x1", "WETH": "0x2"}
	ok.Pages = 3
	ok.Markets = 1
	ok.Elapsed = 1500 * time.Millisecond

	failed := exchange.NewResult("DDEX")
	failed.Pages = 1
	failed.Err = errors.New("Call to https://api.ddex.io/v3/markets failed with status 503")

	report := &syncer.Report{
		Before: 10,
		After:  12,
		Saved:  true,
		Sources: []syncer.SourceReport{
			{Result: ok, Added: 2},
			{Result: failed},
		},
	}

	var out bytes.Buffer
	newTableWriter(&out).Render(report)

	rendered := out.String()
	assert.Contains(t, rendered, "RadarRelay")
	assert.Contains(t, rendered, "1.5s")
	assert.Contains(t, rendered, "DDEX")
	assert.Contains(t, rendered, "failed with status 503")
	assert.Contains(t, rendered, "OK")
	assert.Contains(t, rendered, "10 -> 12")
	assert.Contains(t, rendered, "saved")
}

func TestTableWriter_status(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()
	tw := newTableWriter(&bytes.Buffer{})

	msg := strings.Repeat("市场", 60)
	status := tw.status(errors.New(msg))
	assert.True(t, utf8.ValidString(status))
	assert.Contains(t, status, "...")
	assert.LessOrEqual(t, runewidth.StringWidth(status), maxStatusWidth)

	assert.Equal(t, "boom", tw.status(errors.New("boom")))
}
