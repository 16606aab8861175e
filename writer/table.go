package writer

import (
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uilive"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/polyrabbit/erc20-tokens/syncer"
)

var headers = []string{"Source", "Pages", "Markets", "Tokens", "Added", "Elapsed", "Status"}

const maxStatusWidth = 80

var faint = color.New(color.Faint).SprintFunc()

type tableWriter struct {
	*uilive.Writer
	table *tablewriter.Table
}

// Set up ascii table writer
func NewTableWriter() *tableWriter {
	return newTableWriter(colorable.NewColorableStdout()) // For Windows
}

func newTableWriter(out io.Writer) *tableWriter {
	tw := &tableWriter{Writer: uilive.New()}
	tw.Writer.Out = out
	tw.table = tablewriter.NewWriter(tw.Writer)
	tw.table.SetAutoFormatHeaders(false)
	tw.table.SetAutoWrapText(false)
	formattedHeaders := make([]string, len(headers))
	for i, hdr := range headers {
		formattedHeaders[i] = color.YellowString(hdr)
	}
	tw.table.SetHeader(formattedHeaders)
	tw.table.SetRowLine(true)
	tw.table.SetCenterSeparator(faint("-"))
	tw.table.SetColumnSeparator(faint("|"))
	tw.table.SetRowSeparator(faint("-"))
	return tw
}

func (tw *tableWriter) status(err error) string {
	if err == nil {
		return color.GreenString("OK")
	}
	return color.RedString(runewidth.Truncate(err.Error(), maxStatusWidth, "..."))
}

func (tw *tableWriter) highlightAdded(added int) string {
	if added == 0 {
		return faint("0")
	}
	return color.GreenString(strconv.Itoa(added))
}

func (tw *tableWriter) Render(report *syncer.Report) {
	tw.table.ClearRows()
	// Fill in data
	for _, src := range report.Sources {
		tw.table.Append([]string{
			src.Source,
			strconv.Itoa(src.Pages),
			strconv.Itoa(src.Markets),
			strconv.Itoa(len(src.Tokens)),
			tw.highlightAdded(src.Added),
			src.Elapsed.Round(time.Millisecond).String(),
			tw.status(src.Err),
		})
	}
	saved := "not saved"
	if report.Saved {
		saved = "saved"
	}
	tw.table.SetFooter([]string{"Total", "", "",
		strconv.Itoa(report.Before) + " -> " + strconv.Itoa(report.After),
		tw.highlightAdded(report.After - report.Before), "", saved})

	tw.table.Render()
	tw.Flush()
}
