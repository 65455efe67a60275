// Package report renders annotation audits and decoded records as tables.
//
// Tables use go-pretty's rounded style. When color is enabled, missing keys
// are highlighted so incomplete annotations stand out before release.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/dsanno/internal/normalize"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// MissingCell marks a key that is not present in a record.
const MissingCell = "MISSING"

// DefaultMaxCellWidth truncates long values such as tag lists and URLs.
const DefaultMaxCellWidth = 32

// Options controls rendering.
type Options struct {
	// Color enables lipgloss styling; see ColorEnabled.
	Color bool

	// MaxCellWidth truncates cell values longer than this many runes.
	// Zero selects DefaultMaxCellWidth; negative disables truncation.
	MaxCellWidth int
}

// Summary renders an audit as a table with one row per record and one column
// per audited key, followed by a one-line verdict.
func Summary(s normalize.Summary, opts Options) string {
	headers := append([]string{"#"}, s.Keys...)
	headers = append(headers, "status")

	aligns := make([]columnAlignment, len(headers))
	aligns[0] = alignRight

	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, strconv.Itoa(row.Index))
		for j, key := range s.Keys {
			cells = append(cells, opts.cell(row.Record.Get(key), row.States[j]))
		}
		status := opts.style(SuccessStyle, "ok")
		if !row.IsComplete() {
			status = opts.style(ErrorStyle, "incomplete")
		}
		cells = append(cells, status)
		rows = append(rows, cells)
	}

	var b strings.Builder
	b.WriteString(renderTable(headers, rows, aligns))
	b.WriteString("\n")
	b.WriteString(Verdict(s, opts))
	return b.String()
}

// Verdict summarizes an audit in one line.
func Verdict(s normalize.Summary, opts Options) string {
	incomplete := len(s.Incomplete())
	if incomplete == 0 {
		return opts.style(SuccessStyle, fmt.Sprintf("✓ %d record(s), all keys present", len(s.Rows)))
	}
	return opts.style(WarningStyle, fmt.Sprintf("✗ %d of %d record(s) missing keys; run 'dsanno normalize' to fill them", incomplete, len(s.Rows)))
}

// Records renders records as a table. The columns are the union of the
// records' keys in first-seen order, unless keys is non-empty.
func Records(records []dsanno.Record, keys []string, opts Options) string {
	if len(keys) == 0 {
		keys = unionKeys(records)
	}
	if len(keys) == 0 {
		return ""
	}

	s := normalize.Summarize(records, keys)
	headers := append([]string{"#"}, keys...)
	aligns := make([]columnAlignment, len(headers))
	aligns[0] = alignRight

	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := []string{strconv.Itoa(row.Index)}
		for j, key := range keys {
			if row.States[j] == normalize.StateMissing {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, opts.cell(row.Record.Get(key), row.States[j]))
		}
		rows = append(rows, cells)
	}

	return renderTable(headers, rows, aligns)
}

func (o Options) cell(v dsanno.Value, state normalize.KeyState) string {
	switch state {
	case normalize.StateMissing:
		return o.style(MissingStyle, MissingCell)
	case normalize.StateAbsent:
		return o.style(AbsentStyle, dsanno.AbsentToken)
	default:
		return o.truncate(v.String())
	}
}

func (o Options) truncate(s string) string {
	limit := o.MaxCellWidth
	if limit == 0 {
		limit = DefaultMaxCellWidth
	}
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

func (o Options) style(style lipgloss.Style, s string) string {
	if !o.Color {
		return s
	}
	return style.Render(s)
}

func unionKeys(records []dsanno.Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range records {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}
