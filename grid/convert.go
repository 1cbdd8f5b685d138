package grid

import "fmt"

// Spec is the attribute-bearing external shape of an element. Zero spans
// mean "default to 1", matching the construction defaults, so the zero
// value of the span fields can be left unset by callers.
type Spec struct {
	IsHeader bool
	Row      int
	Col      int
	RowSpan  int
	ColSpan  int
	Value    string
}

// FromSpec converts the attribute-bearing shape into a canonical Element.
// RowSpan and ColSpan of 0 default to 1; any other out-of-range field fails
// with a *ValidationError.
func FromSpec(s Spec) (Element, error) {
	rowSpan, colSpan := s.RowSpan, s.ColSpan
	if rowSpan == 0 {
		rowSpan = 1
	}
	if colSpan == 0 {
		colSpan = 1
	}
	return NewElement(s.IsHeader, s.Row, s.Col, rowSpan, colSpan, s.Value)
}

// FromRecord converts a dict-like shape, as produced by decoding JSON
// objects, into a canonical Element. Recognized keys are "is_header",
// "row", "col", "rowspan", "colspan", and "value"; the first three are
// required, spans default to 1, and value defaults to the empty string.
// Numeric fields accept any integral Go number produced by a decoder.
func FromRecord(rec map[string]any) (Element, error) {
	isHeader, ok := rec["is_header"].(bool)
	if !ok {
		return Element{}, fmt.Errorf("grid: record field %q: expected bool, got %T", "is_header", rec["is_header"])
	}
	row, err := recordInt(rec, "row", true, 0)
	if err != nil {
		return Element{}, err
	}
	col, err := recordInt(rec, "col", true, 0)
	if err != nil {
		return Element{}, err
	}
	rowSpan, err := recordInt(rec, "rowspan", false, 1)
	if err != nil {
		return Element{}, err
	}
	colSpan, err := recordInt(rec, "colspan", false, 1)
	if err != nil {
		return Element{}, err
	}
	value := ""
	if v, present := rec["value"]; present {
		s, ok := v.(string)
		if !ok {
			return Element{}, fmt.Errorf("grid: record field %q: expected string, got %T", "value", v)
		}
		value = s
	}
	return NewElement(isHeader, row, col, rowSpan, colSpan, value)
}

// FromTuple converts the positional shape (is_header, row, col, rowspan,
// colspan, value) into a canonical Element. At least the first three
// positions are required; trailing positions default like the constructor
// (spans 1, value empty).
func FromTuple(tuple []any) (Element, error) {
	if len(tuple) < 3 || len(tuple) > 6 {
		return Element{}, fmt.Errorf("grid: tuple needs 3 to 6 positions, got %d", len(tuple))
	}
	isHeader, ok := tuple[0].(bool)
	if !ok {
		return Element{}, fmt.Errorf("grid: tuple position 0: expected bool, got %T", tuple[0])
	}
	row, err := tupleInt(tuple, 1)
	if err != nil {
		return Element{}, err
	}
	col, err := tupleInt(tuple, 2)
	if err != nil {
		return Element{}, err
	}
	rowSpan, colSpan := 1, 1
	if len(tuple) > 3 {
		if rowSpan, err = tupleInt(tuple, 3); err != nil {
			return Element{}, err
		}
	}
	if len(tuple) > 4 {
		if colSpan, err = tupleInt(tuple, 4); err != nil {
			return Element{}, err
		}
	}
	value := ""
	if len(tuple) > 5 {
		s, ok := tuple[5].(string)
		if !ok {
			return Element{}, fmt.Errorf("grid: tuple position 5: expected string, got %T", tuple[5])
		}
		value = s
	}
	return NewElement(isHeader, row, col, rowSpan, colSpan, value)
}

func recordInt(rec map[string]any, key string, required bool, def int) (int, error) {
	v, present := rec[key]
	if !present {
		if required {
			return 0, fmt.Errorf("grid: record field %q missing", key)
		}
		return def, nil
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("grid: record field %q: expected integer, got %T", key, v)
	}
	return n, nil
}

func tupleInt(tuple []any, pos int) (int, error) {
	n, ok := asInt(tuple[pos])
	if !ok {
		return 0, fmt.Errorf("grid: tuple position %d: expected integer, got %T", pos, tuple[pos])
	}
	return n, nil
}

// asInt accepts the integral numeric types decoders commonly produce.
// Fractional floats are rejected rather than truncated.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
