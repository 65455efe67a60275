package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/internal/normalize"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

func auditFixture() normalize.Summary {
	complete := dsanno.MustRecord("source", "HCP", "title", "Cortical thickness")
	complete.Set("url", dsanno.Absent())
	partial := dsanno.MustRecord("source", "abagen")

	return normalize.Summarize([]dsanno.Record{complete, partial}, []string{"source", "title", "url"})
}

func TestSummary_Plain(t *testing.T) {
	out := Summary(auditFixture(), Options{})

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.True(t, strings.HasPrefix(lines[0], "╭"), "rounded table expected, got %q", lines[0])

	assert.Contains(t, out, "SOURCE", "go-pretty upper-cases headers")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "Cortical thickness")
	assert.Contains(t, out, "None")
	assert.Equal(t, 2, strings.Count(out, MissingCell))
	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "✗ 1 of 2 record(s) missing keys")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes without color")
}

func TestVerdict_AllComplete(t *testing.T) {
	s := normalize.Summarize([]dsanno.Record{dsanno.MustRecord("source", "HCP")}, []string{"source"})
	assert.Equal(t, "✓ 1 record(s), all keys present", Verdict(s, Options{}))
}

func TestRecords(t *testing.T) {
	records := []dsanno.Record{
		dsanno.MustRecord("source", "HCP", "res", "2mm"),
		dsanno.MustRecord("source", "HCP", "den", "32k", "hemi", "L"),
	}

	out := Records(records, nil, Options{})
	header := strings.Split(out, "\n")[1]
	assert.Less(t, strings.Index(header, "RES"), strings.Index(header, "DEN"), "columns follow first-seen key order")
	assert.Less(t, strings.Index(header, "DEN"), strings.Index(header, "HEMI"))
	assert.NotContains(t, out, MissingCell, "keys that do not apply are left blank")
	assert.Contains(t, out, "32k")
}

func TestRecords_Empty(t *testing.T) {
	assert.Equal(t, "", Records(nil, nil, Options{}))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		width int
		input string
		want  string
	}{
		{"default keeps short values", 0, "HCP", "HCP"},
		{"default truncates long values", 0, strings.Repeat("a", 40), strings.Repeat("a", 31) + "…"},
		{"custom width", 5, "thickness", "thic…"},
		{"disabled", -1, strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"counts runes", 3, "αβγ", "αβγ"},
		{"width one", 1, "abc", "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Options{MaxCellWidth: tt.width}.truncate(tt.input))
		})
	}
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}), "buffers are never terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}

func TestColorEnabled_CI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "true")
	assert.False(t, ColorEnabled(os.Stdout))
}
