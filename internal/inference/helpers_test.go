package inference

import (
	"testing"

	"cgpa-predictor/internal/artifacts"
	"cgpa-predictor/internal/student"

	"github.com/stretchr/testify/require"
)

// ==== Test Helper Functions ====

func testEncoderClasses() map[string][]string {
	yesNo := []string{"No", "Yes"}
	return map[string][]string{
		"Choose your gender":                           {"Female", "Male"},
		"What is your course?":                         {"BIT", "Engineering", "IT", "Laws"},
		"Your current year of Study":                   {"Year 1", "year 1", "year 2", "year 3", "year 4"},
		"Marital status":                               yesNo,
		"Do you have Depression?":                      yesNo,
		"Do you have Anxiety?":                         yesNo,
		"Do you have Panic attack?":                    yesNo,
		"Did you seek any specialist for a treatment?": yesNo,
	}
}

func testFeatureNames() []string {
	return []string{
		"Choose your gender",
		"Age",
		"What is your course?",
		"Your current year of Study",
		"Marital status",
		"Do you have Depression?",
		"Do you have Anxiety?",
		"Do you have Panic attack?",
		"Did you seek any specialist for a treatment?",
	}
}

func newBundle(t *testing.T, model artifacts.Model, scaler artifacts.Scaler, classes map[string][]string) *artifacts.Bundle {
	t.Helper()
	enc, err := artifacts.NewEncoders(classes)
	require.NoError(t, err)
	b, err := artifacts.NewBundle(nil, model, scaler, enc, testFeatureNames())
	require.NoError(t, err)
	return b
}

// constantPipeline predicts intercept for every input.
func constantPipeline(t *testing.T, intercept float64) *Pipeline {
	t.Helper()
	model, err := artifacts.NewLinearModel(make([]float64, 9), intercept)
	require.NoError(t, err)
	scaler, err := artifacts.NewStandardScaler(9, nil, nil)
	require.NoError(t, err)
	return newPipeline(t, newBundle(t, model, scaler, testEncoderClasses()))
}

func newPipeline(t *testing.T, b *artifacts.Bundle) *Pipeline {
	t.Helper()
	mapper, err := student.NewMapper(student.DefaultColumns())
	require.NoError(t, err)
	p, err := NewPipeline(b, mapper)
	require.NoError(t, err)
	return p
}

func intPtr(v int) *student.WholeNumber {
	n := student.WholeNumber(v)
	return &n
}

func validInput(t *testing.T, mutate ...func(r *student.Request)) student.Input {
	t.Helper()
	req := student.Request{
		Age:           intPtr(21),
		Gender:        "Male",
		Course:        "Engineering",
		Year:          "year 3",
		MaritalStatus: "No",
		Depression:    "No",
		Anxiety:       "Yes",
		PanicAttack:   "No",
		Treatment:     "No",
	}
	for _, m := range mutate {
		m(&req)
	}
	in, err := student.Validate(req)
	require.NoError(t, err)
	return in
}
