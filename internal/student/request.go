// Package student holds the prediction request schema and the mapping from request fields
// to the column labels the model was trained on.
package student

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"cgpa-predictor/internal/common/errors"

	"github.com/go-playground/validator/v10"
)

// Request is the wire form of one student's survey answers.
type Request struct {
	Age           *WholeNumber `json:"age" validate:"required,min=18,max=30"`
	Gender        string       `json:"gender" validate:"required,oneof=Male Female"`
	Course        string       `json:"course" validate:"required,min=2,max=100"`
	Year          string       `json:"year" validate:"required,oneof='year 1' 'year 2' 'year 3' 'year 4'"`
	MaritalStatus string       `json:"marital_status" validate:"required,oneof=Yes No"`
	Depression    string       `json:"depression" validate:"required,oneof=Yes No"`
	Anxiety       string       `json:"anxiety" validate:"required,oneof=Yes No"`
	PanicAttack   string       `json:"panic_attack" validate:"required,oneof=Yes No"`
	Treatment     string       `json:"treatment" validate:"required,oneof=Yes No"`
}

// WholeNumber is an integer that also decodes from a JSON number with no fractional part,
// so 21 and 21.0 are both 21. Strings, booleans and 21.5 are rejected.
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("expected a whole number, got %s", data)
	}
	*n = WholeNumber(f)
	return nil
}

// Input is a validated Request. It cannot be modified after Validate returns it.
type Input struct {
	age           int
	gender        string
	course        string
	year          string
	maritalStatus string
	depression    string
	anxiety       string
	panicAttack   string
	treatment     string
}

func (in Input) Age() int { return in.age }
func (in Input) Gender() string { return in.gender }
func (in Input) Course() string { return in.course }
func (in Input) Year() string { return in.year }
func (in Input) MaritalStatus() string { return in.maritalStatus }
func (in Input) Depression() string { return in.depression }
func (in Input) Anxiety() string { return in.anxiety }
func (in Input) PanicAttack() string { return in.panicAttack }
func (in Input) Treatment() string { return in.treatment }

// values returns the answers keyed by request field name.
func (in Input) values() map[string]any {
	return map[string]any{
		FieldAge:           in.age,
		FieldGender:        in.gender,
		FieldCourse:        in.course,
		FieldYear:          in.year,
		FieldMaritalStatus: in.maritalStatus,
		FieldDepression:    in.depression,
		FieldAnxiety:       in.anxiety,
		FieldPanicAttack:   in.panicAttack,
		FieldTreatment:     in.treatment,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks req against the schema. On failure the error is a VALIDATION_FAILED
// StandardError listing every rejected field.
func Validate(req Request) (Input, error) {
	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Input{}, errors.NewInternalError(err)
		}
		fields := make([]errors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, errors.FieldError{
				Field:   fe.Field(),
				Message: describe(fe),
				Code:    fe.Tag(),
			})
		}
		return Input{}, errors.NewValidationFailedError(fields)
	}

	return Input{
		age:           int(*req.Age),
		gender:        req.Gender,
		course:        req.Course,
		year:          req.Year,
		maritalStatus: req.MaritalStatus,
		depression:    req.Depression,
		anxiety:       req.Anxiety,
		panicAttack:   req.PanicAttack,
		treatment:     req.Treatment,
	}, nil
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(splitOneOf(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// splitOneOf splits a oneof parameter, honouring single-quoted values that contain spaces.
func splitOneOf(param string) []string {
	var out []string
	for _, part := range strings.Split(param, "'") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(param, "'") {
			out = append(out, part)
			continue
		}
		out = append(out, strings.Fields(part)...)
	}
	return out
}
