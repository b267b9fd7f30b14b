package artifacts

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LabelEncoder maps a category to its position in the fitted class list.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}
	e := &LabelEncoder{
		classes: append([]string(nil), classes...),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range classes {
		if _, dup := e.index[c]; dup {
			return nil, fmt.Errorf("label encoder class %q appears twice", c)
		}
		e.index[c] = i
	}
	return e, nil
}

// Transform returns the code for value and false when the value was never seen in training.
func (e *LabelEncoder) Transform(value string) (int, bool) {
	code, ok := e.index[value]
	return code, ok
}

func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Encoders holds one LabelEncoder per categorical training column.
type Encoders struct {
	byColumn map[string]*LabelEncoder
	columns  []string
}

func NewEncoders(classes map[string][]string) (*Encoders, error) {
	e := &Encoders{byColumn: make(map[string]*LabelEncoder, len(classes))}
	for col, cls := range classes {
		enc, err := NewLabelEncoder(cls)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		e.byColumn[col] = enc
		e.columns = append(e.columns, col)
	}
	sort.Strings(e.columns)
	return e, nil
}

// Columns lists encoder columns in sorted order.
func (e *Encoders) Columns() []string {
	return append([]string(nil), e.columns...)
}

func (e *Encoders) Get(column string) (*LabelEncoder, bool) {
	enc, ok := e.byColumn[column]
	return enc, ok
}

func (e *Encoders) Len() int { return len(e.columns) }

// ParseEncoders validates and decodes a label encoder document.
func ParseEncoders(raw []byte) (*Encoders, error) {
	if err := checkDocument(labelEncodersSchema, raw); err != nil {
		return nil, err
	}
	var doc map[string][]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return NewEncoders(doc)
}

// ParseFeatureNames validates and decodes the ordered training column list.
func ParseFeatureNames(raw []byte) ([]string, error) {
	if err := checkDocument(featureNamesSchema, raw); err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	return names, nil
}
