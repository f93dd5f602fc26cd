package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

type Format string

const (
	FormatPDF    Format = "pdf"
	FormatXLSX   Format = "xlsx"
	FormatPNG    Format = "png"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Exporter renders a Document into one file format.
type Exporter interface {
	Format() Format
	Extension() string
	ContentType() string
	Export(ctx context.Context, w io.Writer, doc Document) error
}

type Registry struct {
	exporters map[Format]Exporter
}

func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[Format]Exporter, len(exporters))}
	for _, e := range exporters {
		r.exporters[e.Format()] = e
	}
	return r
}

// Lookup finds the exporter for a format name such as "pdf" or "PDF".
func (r *Registry) Lookup(format string) (Exporter, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	if f == "db" {
		f = FormatSQLite
	}
	e, ok := r.exporters[f]
	if !ok {
		return nil, &UnsupportedFormatError{Format: format, Known: r.Formats()}
	}
	return e, nil
}

// Formats lists registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// FormatForPath infers the export format from a file extension.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pdf", "xlsx", "png", "json":
		return ext, nil
	case "db", "sqlite", "sqlite3":
		return string(FormatSQLite), nil
	case "":
		return "", fmt.Errorf("cannot infer export format from %q: missing extension", path)
	default:
		return "", fmt.Errorf("cannot infer export format from %q: unknown extension .%s", path, ext)
	}
}

type UnsupportedFormatError struct {
	Format string
	Known  []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q (available: %s)", e.Format, strings.Join(e.Known, ", "))
}

// DefaultRegistry registers every built-in exporter. Chart dimensions below
// the minimum fall back to the defaults.
func DefaultRegistry(chartWidth, chartHeight int) *Registry {
	return NewRegistry(
		NewPDFExporter(),
		NewXLSXExporter(),
		NewChartExporter(chartWidth, chartHeight),
		NewJSONExporter(),
		NewSQLiteExporter(),
	)
}
