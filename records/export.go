package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format identifies a serialization for assembled records.
type Format int

const (
	// FormatJSON emits one indented JSON array.
	FormatJSON Format = iota
	// FormatJSONL emits one compact JSON object per line.
	FormatJSONL
	// FormatCSV emits path,value rows with the path joined by the
	// separator.
	FormatCSV
	// FormatText emits one context line per record.
	FormatText
)

// String returns the format's name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// FileExtension returns the conventional file extension for the format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// ParseFormat resolves a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "csv":
		return FormatCSV, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown output format: %q", s)
	}
}

// ExportConfig holds options for exporting records.
type ExportConfig struct {
	// Format specifies the serialization
	Format Format

	// Separator joins path components in CSV rows. Empty means
	// DefaultSeparator. JSON and JSONL carry the path as an array and
	// ignore it; text contexts are rendered at assembly time.
	Separator string
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:    FormatJSON,
		Separator: DefaultSeparator,
	}
}

// Exporter serializes assembled records.
type Exporter struct {
	config ExportConfig
}

// NewExporter creates an exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultExportConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	if config.Separator == "" {
		config.Separator = DefaultSeparator
	}
	return &Exporter{config: config}
}

// Write serializes the records to the writer in the configured format.
func (e *Exporter) Write(records []Record, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		return e.writeJSON(records, w)
	case FormatJSONL:
		return e.writeJSONL(records, w)
	case FormatCSV:
		return e.writeCSV(records, w)
	case FormatText:
		return e.writeText(records, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// WriteGrouped serializes one record list per source table, keeping the
// group structure visible: JSON nests one array per table, JSONL emits one
// array per line, text separates tables with a blank line, and CSV runs
// the rows together.
func (e *Exporter) WriteGrouped(groups [][]Record, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("encoding record groups: %w", err)
		}
		return nil
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for i, group := range groups {
			if err := enc.Encode(group); err != nil {
				return fmt.Errorf("encoding record group %d: %w", i, err)
			}
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		row := 0
		for _, group := range groups {
			for _, r := range group {
				if err := cw.Write(e.csvRow(r)); err != nil {
					return fmt.Errorf("writing CSV row %d: %w", row, err)
				}
				row++
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing CSV writer: %w", err)
		}
		return nil
	case FormatText:
		for i, group := range groups {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing group separator: %w", err)
				}
			}
			if err := e.writeText(group, w); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// WriteToFile serializes the records to a file.
func (e *Exporter) WriteToFile(records []Record, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Write(records, f)
}

// WriteToString serializes the records to a string.
func (e *Exporter) WriteToString(records []Record) (string, error) {
	var buf bytes.Buffer
	if err := e.Write(records, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) writeJSON(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

func (e *Exporter) writeJSONL(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return nil
}

func (e *Exporter) writeCSV(records []Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	for i, r := range records {
		if err := cw.Write(e.csvRow(r)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV writer: %w", err)
	}
	return nil
}

func (e *Exporter) writeText(records []Record, w io.Writer) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Context); err != nil {
			return fmt.Errorf("writing text line: %w", err)
		}
	}
	return nil
}

func (e *Exporter) csvRow(r Record) []string {
	sep := e.config.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return []string{strings.Join(r.Path, sep), r.Value}
}
