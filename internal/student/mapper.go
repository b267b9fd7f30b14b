package student

import (
	"fmt"
	"sort"
	"strings"
)

// Request field names.
const (
	FieldAge           = "age"
	FieldGender        = "gender"
	FieldCourse        = "course"
	FieldYear          = "year"
	FieldMaritalStatus = "marital_status"
	FieldDepression    = "depression"
	FieldAnxiety       = "anxiety"
	FieldPanicAttack   = "panic_attack"
	FieldTreatment     = "treatment"
)

// Fields lists every request field in wire order.
var Fields = []string{
	FieldAge,
	FieldGender,
	FieldCourse,
	FieldYear,
	FieldMaritalStatus,
	FieldDepression,
	FieldAnxiety,
	FieldPanicAttack,
	FieldTreatment,
}

// numericFields keep their numeric value through encoding.
var numericFields = map[string]bool{FieldAge: true}

// DefaultColumns returns the column labels of the survey the model was trained on.
func DefaultColumns() map[string]string {
	return map[string]string{
		FieldAge:           "Age",
		FieldGender:        "Choose your gender",
		FieldCourse:        "What is your course?",
		FieldYear:          "Your current year of Study",
		FieldMaritalStatus: "Marital status",
		FieldDepression:    "Do you have Depression?",
		FieldAnxiety:       "Do you have Anxiety?",
		FieldPanicAttack:   "Do you have Panic attack?",
		FieldTreatment:     "Did you seek any specialist for a treatment?",
	}
}

// Mapper renames request fields to training columns.
type Mapper struct {
	columns map[string]string
}

// NewMapper checks that columns maps each request field to a distinct column.
func NewMapper(columns map[string]string) (*Mapper, error) {
	known := make(map[string]bool, len(Fields))
	for _, f := range Fields {
		known[f] = true
	}

	var unknown []string
	for f := range columns {
		if !known[f] {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown request fields in column table: %s", strings.Join(unknown, ", "))
	}

	owner := make(map[string]string, len(columns))
	table := make(map[string]string, len(Fields))
	for _, f := range Fields {
		col, ok := columns[f]
		if !ok || strings.TrimSpace(col) == "" {
			return nil, fmt.Errorf("no training column for request field %q", f)
		}
		if prev, dup := owner[col]; dup {
			return nil, fmt.Errorf("fields %q and %q both map to column %q", prev, f, col)
		}
		owner[col] = f
		table[f] = col
	}
	return &Mapper{columns: table}, nil
}

// Map renames the validated answers. Age stays an int, every other value a string.
func (m *Mapper) Map(in Input) map[string]any {
	row := make(map[string]any, len(m.columns))
	for field, v := range in.values() {
		row[m.columns[field]] = v
	}
	return row
}

// Columns returns the training columns in request field order.
func (m *Mapper) Columns() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = m.columns[f]
	}
	return out
}

// Column returns the training column for a request field.
func (m *Mapper) Column(field string) (string, bool) {
	col, ok := m.columns[field]
	return col, ok
}

// CategoricalColumns returns the columns whose values are strings and need an encoder.
func (m *Mapper) CategoricalColumns() []string {
	var out []string
	for _, f := range Fields {
		if !numericFields[f] {
			out = append(out, m.columns[f])
		}
	}
	return out
}
