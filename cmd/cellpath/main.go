// Package main provides the CLI entry point for cellpath.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/cellpath"
	"github.com/tsawler/cellpath/format"
	"github.com/tsawler/cellpath/internal/source"
	"github.com/tsawler/cellpath/records"
)

var (
	outputFormat string
	separator    string

	tableID      string
	spanAsHeader bool
	allTables    bool

	sheetName  string
	startCell  string
	headerRows int
	headerCols int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellpath [source]",
		Short: "Extract table cells with their header context",
		Long: `cellpath reads HTML or Excel tables and pairs every data cell with the
trail of header labels that governs it, so a bare "100" comes out as
"Revenue → Q1: 100".

The source may be a file path, an http(s) URL, or - for stdin. When
invoked without a subcommand the source format is detected from the
filename extension, then from the content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAuto,

		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, jsonl, text, csv")
	rootCmd.PersistentFlags().StringVarP(&separator, "separator", "s", records.DefaultSeparator, "Separator between path components")

	htmlCmd := &cobra.Command{
		Use:   "html [source]",
		Short: "Extract cells from an HTML table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHTML,
	}
	htmlCmd.Flags().StringVar(&tableID, "id", "", "Extract only the table with this id attribute")
	htmlCmd.Flags().BoolVar(&spanAsHeader, "span-as-header", false, "Treat any spanning cell as a header label")
	htmlCmd.Flags().BoolVarP(&allTables, "all-tables", "a", false, "Process every table, grouped per table")

	xlsxCmd := &cobra.Command{
		Use:   "xlsx [source]",
		Short: "Extract cells from an Excel worksheet",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runXLSX,
	}
	xlsxCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: the active sheet)")
	xlsxCmd.Flags().StringVar(&startCell, "start", "A1", "Anchor cell of the table range")
	xlsxCmd.Flags().IntVar(&headerRows, "header-rows", 1, "Leading rows treated as headers")
	xlsxCmd.Flags().IntVar(&headerCols, "header-cols", 1, "Leading columns treated as headers")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the cellpath version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cellpath %s\n", cellpath.Version)
		},
	}

	rootCmd.AddCommand(htmlCmd, xlsxCmd, versionCmd)
	return rootCmd
}

// sourceArg resolves the positional source argument, defaulting to stdin.
func sourceArg(args []string) string {
	if len(args) == 0 {
		return source.Stdin
	}
	return args[0]
}

// runAuto sniffs the source format and dispatches to the html or xlsx
// path. The filename extension wins; content magic decides otherwise.
func runAuto(cmd *cobra.Command, args []string) error {
	src := sourceArg(args)

	f := format.Detect(src)
	data, contentType, err := source.Fetch(src)
	if err != nil {
		return err
	}
	if f == format.Unknown {
		f = format.DetectFromBytes(data)
	}

	switch f {
	case format.HTML:
		return extractHTML(data, contentType, cmd.OutOrStdout())
	case format.XLSX:
		return extractXLSX(data, cmd.OutOrStdout())
	default:
		return fmt.Errorf("cannot determine source format for %q; use the html or xlsx subcommand", src)
	}
}

func runHTML(cmd *cobra.Command, args []string) error {
	data, contentType, err := source.Fetch(sourceArg(args))
	if err != nil {
		return err
	}
	return extractHTML(data, contentType, cmd.OutOrStdout())
}

func runXLSX(cmd *cobra.Command, args []string) error {
	data, _, err := source.Fetch(sourceArg(args))
	if err != nil {
		return err
	}
	return extractXLSX(data, cmd.OutOrStdout())
}

func extractHTML(data []byte, contentType string, w io.Writer) error {
	decoded, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return fmt.Errorf("detecting charset: %w", err)
	}

	ext := cellpath.HTML(decoded).Separator(separator)
	if tableID != "" {
		ext = ext.TableID(tableID)
	}
	if spanAsHeader {
		ext = ext.SpanAsLabel()
	}

	exporter, err := newExporter()
	if err != nil {
		return err
	}

	if allTables {
		groups, err := ext.AllRecords()
		if err != nil {
			return err
		}
		return exporter.WriteGrouped(groups, w)
	}

	recs, err := ext.Records()
	if err != nil {
		return err
	}
	return exporter.Write(recs, w)
}

func extractXLSX(data []byte, w io.Writer) error {
	recs, err := cellpath.WorkbookReader(bytes.NewReader(data)).
		Sheet(sheetName).
		Start(startCell).
		HeaderRows(headerRows).
		HeaderCols(headerCols).
		Separator(separator).
		Records()
	if err != nil {
		return err
	}

	exporter, err := newExporter()
	if err != nil {
		return err
	}
	return exporter.Write(recs, w)
}

func newExporter() (*records.Exporter, error) {
	f, err := records.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return records.NewExporterWithConfig(records.ExportConfig{
		Format:    f,
		Separator: separator,
	}), nil
}
