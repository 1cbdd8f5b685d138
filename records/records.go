// Package records pairs data cells with their header paths and renders the
// result into output shapes and serializations for downstream consumers.
package records

import (
	"strings"

	"github.com/tsawler/cellpath/grid"
)

// DefaultSeparator joins path components in rendered contexts.
const DefaultSeparator = " → "

// Record is one data cell with its resolved header path and the rendered
// context line.
type Record struct {
	// Path holds the governing header labels, most general first. Never
	// nil; an ungoverned cell has an empty path.
	Path []string `json:"path"`

	// Value is the data cell's own text.
	Value string `json:"value"`

	// Context is the path joined by the separator, a ": " delimiter, and
	// the value; just the value when the path is empty.
	Context string `json:"context"`
}

// Pair is the positional output shape: a path and a value, without the
// rendered context.
type Pair struct {
	Path  []string
	Value string
}

// Config controls record assembly.
type Config struct {
	// Separator joins path components in contexts. Empty means
	// DefaultSeparator.
	Separator string
}

// DefaultConfig returns a Config using DefaultSeparator.
func DefaultConfig() Config {
	return Config{Separator: DefaultSeparator}
}

// BuildContext renders the context line for one cell: the path components
// joined by sep, then ": ", then the value. A cell with no governing
// headers renders as the bare value.
func BuildContext(path []string, value, sep string) string {
	if len(path) == 0 {
		return value
	}
	return strings.Join(path, sep) + ": " + value
}

// Assemble builds one projection over the elements and emits a Record for
// every data element, in input order. Header elements never become
// records; their labels appear only inside paths.
func Assemble(elements []grid.Element, cfg Config) []Record {
	sep := cfg.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	p := grid.NewProjection(elements)
	records := []Record{}
	for _, e := range elements {
		if e.IsHeader() {
			continue
		}
		path := p.GetPath(e.Row(), e.Col())
		records = append(records, Record{
			Path:    path,
			Value:   e.Value(),
			Context: BuildContext(path, e.Value(), sep),
		})
	}
	return records
}

// AssembleGroups assembles one record list per element collection,
// preserving group order.
func AssembleGroups(groups [][]grid.Element, cfg Config) [][]Record {
	out := make([][]Record, len(groups))
	for i, els := range groups {
		out[i] = Assemble(els, cfg)
	}
	return out
}

// Strings projects records onto their context lines.
func Strings(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Context
	}
	return out
}

// Pairs projects records onto the positional (path, value) shape.
func Pairs(records []Record) []Pair {
	out := make([]Pair, len(records))
	for i, r := range records {
		out[i] = Pair{Path: r.Path, Value: r.Value}
	}
	return out
}
