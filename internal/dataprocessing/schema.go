package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"noshowcli/internal/errors"
	"noshowcli/pkg/contracts/domain"
)

// Kind is the value type a column is coerced to when loaded
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	// KindTimestamp columns are loaded as text and converted by NormalizeTimestamps
	KindTimestamp
)

// String returns the kind name used in summaries
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Column describes one expected column of the source file
type Column struct {
	Name     string
	Kind     Kind
	Required bool     // an empty cell is a parsing error
	Aliases  []string // accepted alternative header names
}

// Schema lists the columns a source file must provide. Columns found in the
// file but not in the schema are loaded as text.
type Schema struct {
	Columns []Column
}

// AppointmentSchema returns the schema of the medical appointment no-show dataset
func AppointmentSchema() Schema {
	return Schema{Columns: []Column{
		{Name: domain.ColumnPatientID, Kind: KindFloat},
		{Name: domain.ColumnAppointmentID, Kind: KindInt},
		{Name: domain.ColumnGender, Kind: KindText},
		{Name: domain.ColumnScheduledDay, Kind: KindTimestamp},
		{Name: domain.ColumnAppointmentDay, Kind: KindTimestamp},
		{Name: domain.ColumnAge, Kind: KindInt, Required: true},
		{Name: domain.ColumnNeighbourhood, Kind: KindText},
		{Name: domain.ColumnScholarship, Kind: KindInt},
		{Name: domain.ColumnHipertension, Kind: KindInt},
		{Name: domain.ColumnDiabetes, Kind: KindInt},
		{Name: domain.ColumnAlcoholism, Kind: KindInt},
		{Name: domain.ColumnHandcap, Kind: KindInt},
		{Name: domain.ColumnSMSReceived, Kind: KindInt},
		{Name: domain.ColumnNoShowSource, Kind: KindText, Aliases: []string{domain.ColumnNoShow}},
	}}
}

// Lookup finds the schema column for a header name, matching aliases too
func (s Schema) Lookup(header string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == header {
			return col, true
		}
		for _, alias := range col.Aliases {
			if alias == header {
				return col, true
			}
		}
	}
	return Column{}, false
}

// resolve maps every header position to its column definition and reports
// schema columns missing from the header.
func (s Schema) resolve(header []string) ([]Column, error) {
	resolved := make([]Column, len(header))
	seen := make(map[string]bool, len(s.Columns))

	for i, name := range header {
		col, ok := s.Lookup(name)
		if !ok {
			resolved[i] = Column{Name: name, Kind: KindText}
			continue
		}
		if seen[col.Name] {
			return nil, errors.NewParsingError(
				fmt.Sprintf("column %q appears more than once (as %q)", col.Name, name), nil)
		}
		seen[col.Name] = true
		resolved[i] = col
	}

	var missing []string
	for _, col := range s.Columns {
		if !seen[col.Name] {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}

	return resolved, nil
}

// coerce converts a raw cell into the column's value type. Numeric and
// timestamp cells are trimmed; text is kept byte for byte.
func (c Column) coerce(raw string) (any, error) {
	if c.Kind != KindText {
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		if c.Required {
			return nil, fmt.Errorf("column %s requires a value", c.Name)
		}
		return nil, nil
	}

	switch c.Kind {
	case KindInt:
		v, err := parseDecimalInt(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %q is not an integer", c.Name, raw)
		}
		return v, nil
	case KindFloat:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %q is not a number", c.Name, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// maxExactFloatInt is the largest magnitude a float64 holds without rounding
const maxExactFloatInt = 1 << 53

// parseDecimalInt reads a base 10 integer. Leading zeros do not switch the
// base ("010" is 10) and a whole number with a fraction part ("34.0") is
// accepted. Prefixed forms such as 0x1A and digit separators are rejected.
func parseDecimalInt(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return v, nil
	}
	f, ferr := cast.ToFloat64E(raw)
	if ferr != nil {
		return 0, err
	}
	if math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > maxExactFloatInt {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int64(f), nil
}
