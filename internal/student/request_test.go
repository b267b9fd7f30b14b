package student

import (
	"encoding/json"
	"strings"
	"testing"

	"cgpa-predictor/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==== Test Helper Functions ====

func intPtr(v int) *WholeNumber {
	n := WholeNumber(v)
	return &n
}

func validRequest() Request {
	return Request{
		Age:           intPtr(21),
		Gender:        "Female",
		Course:        "Engineering",
		Year:          "year 2",
		MaritalStatus: "No",
		Depression:    "Yes",
		Anxiety:       "No",
		PanicAttack:   "Yes",
		Treatment:     "No",
	}
}

func fieldErrors(t *testing.T, err error) []errors.FieldError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
	return errors.Normalize(err).Fields
}

// ==== Tests ====

func TestValidate_Accepts(t *testing.T) {
	in, err := Validate(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 21, in.Age())
	assert.Equal(t, "Female", in.Gender())
	assert.Equal(t, "Engineering", in.Course())
	assert.Equal(t, "year 2", in.Year())
	assert.Equal(t, "No", in.MaritalStatus())
	assert.Equal(t, "Yes", in.Depression())
	assert.Equal(t, "No", in.Anxiety())
	assert.Equal(t, "Yes", in.PanicAttack())
	assert.Equal(t, "No", in.Treatment())
}

func TestValidate_AgeBoundaries(t *testing.T) {
	tests := []struct {
		age     int
		wantErr bool
	}{
		{17, true},
		{18, false},
		{30, false},
		{31, true},
	}

	for _, tt := range tests {
		req := validRequest()
		req.Age = intPtr(tt.age)
		_, err := Validate(req)
		if !tt.wantErr {
			assert.NoError(t, err, "age %d", tt.age)
			continue
		}
		fields := fieldErrors(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "age", fields[0].Field)
	}
}

func TestValidate_CourseLength(t *testing.T) {
	tests := []struct {
		name    string
		course  string
		wantErr bool
	}{
		{"one char", "E", true},
		{"two chars", "IT", false},
		{"hundred chars", strings.Repeat("a", 100), false},
		{"hundred and one chars", strings.Repeat("a", 101), true},
		{"multibyte counts characters", strings.Repeat("é", 100), false},
		{"two multibyte chars", "éé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Course = tt.course
			_, err := Validate(req)
			if tt.wantErr {
				fields := fieldErrors(t, err)
				assert.Equal(t, "course", fields[0].Field)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_Enums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
		code   string
	}{
		{"lowercase gender", func(r *Request) { r.Gender = "male" }, "gender", "oneof"},
		{"other gender", func(r *Request) { r.Gender = "Other" }, "gender", "oneof"},
		{"capitalised year", func(r *Request) { r.Year = "Year 1" }, "year", "oneof"},
		{"year 5", func(r *Request) { r.Year = "year 5" }, "year", "oneof"},
		{"yes lowercase", func(r *Request) { r.Depression = "yes" }, "depression", "oneof"},
		{"boolean-ish", func(r *Request) { r.Treatment = "true" }, "treatment", "oneof"},
		{"missing anxiety", func(r *Request) { r.Anxiety = "" }, "anxiety", "required"},
		{"missing age", func(r *Request) { r.Age = nil }, "age", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := Validate(req)
			fields := fieldErrors(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Equal(t, tt.code, fields[0].Code)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	req := validRequest()
	req.Year = "year 9"
	req.Age = intPtr(40)
	req.Course = "x"

	fields := fieldErrors(t, func() error { _, err := Validate(req); return err }())
	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "must be one of: year 1, year 2, year 3, year 4", byField["year"])
	assert.Equal(t, "must be at most 30", byField["age"])
	assert.Equal(t, "must be at least 2 characters", byField["course"])
}

func TestRequest_JSONDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"integer age", `{"age": 21}`, false},
		{"integral float age", `{"age": 21.0}`, false},
		{"exponent age", `{"age": 2.1e1}`, false},
		{"fractional age", `{"age": 21.5}`, true},
		{"string age", `{"age": "21"}`, true},
		{"bool age", `{"age": true}`, true},
		{"bool gender", `{"gender": true}`, true},
		{"extra field ignored", `{"age": 21, "gpa_goal": 4}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req Request
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWholeNumber_IntegralFloatsValidate(t *testing.T) {
	for _, raw := range []string{"18", "18.0", "30.0", "1.8e1"} {
		t.Run(raw, func(t *testing.T) {
			var n WholeNumber
			require.NoError(t, json.Unmarshal([]byte(raw), &n))

			req := validRequest()
			req.Age = &n
			in, err := Validate(req)
			require.NoError(t, err)
			assert.Equal(t, int(n), in.Age())
		})
	}

	t.Run("integral float outside the range is a validation error", func(t *testing.T) {
		var n WholeNumber
		require.NoError(t, json.Unmarshal([]byte("31.0"), &n))
		req := validRequest()
		req.Age = &n
		fields := fieldErrors(t, func() error { _, err := Validate(req); return err }())
		require.Len(t, fields, 1)
		assert.Equal(t, "age", fields[0].Field)
		assert.Equal(t, "max", fields[0].Code)
	})
}
