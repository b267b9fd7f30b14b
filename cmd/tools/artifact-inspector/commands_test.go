package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cgpa-predictor/pkg/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shippedBundle = "../../../artifacts"

func TestRunShow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runShow(&out, shippedBundle, "manifest.json"))

	text := out.String()
	assert.Contains(t, text, "Feature Order")
	assert.Contains(t, text, "What is your course?")
	assert.Contains(t, text, "linear_regression")
}

func TestRunValidate(t *testing.T) {
	t.Run("default columns", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runValidate(&out, shippedBundle, "manifest.json", ""))
		assert.Contains(t, out.String(), "is valid")
	})

	t.Run("column table that misses a feature", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := "features:\n  columns:\n    gender: Choose your gender\n    age: Age\n    course: What is your course?\n" +
			"    year: Your current year of Study\n    marital_status: Marital status\n    depression: Do you have Depression?\n" +
			"    anxiety: Do you have Anxiety?\n    panic_attack: Do you have Panic attack?\n    treatment: Treated?\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		var out bytes.Buffer
		assert.Error(t, runValidate(&out, shippedBundle, "manifest.json", path))
	})
}

func TestRunPredict(t *testing.T) {
	body := `{
		"gender": "Female", "age": 21, "course": "Engineering", "year": "year 2",
		"marital_status": "No", "depression": "No", "anxiety": "No",
		"panic_attack": "No", "treatment": "No"
	}`

	t.Run("valid request", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runPredict(&out, shippedBundle, "manifest.json", strings.NewReader(body)))
		assert.Contains(t, out.String(), "Predicted CGPA")
	})

	t.Run("validation failure", func(t *testing.T) {
		var out bytes.Buffer
		bad := strings.Replace(body, `"age": 21`, `"age": 17`, 1)
		assert.Error(t, runPredict(&out, shippedBundle, "manifest.json", strings.NewReader(bad)))
	})

	t.Run("malformed json", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, runPredict(&out, shippedBundle, "manifest.json", strings.NewReader("{")))
	})
}

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	assert.Error(t, runManifest(&out, dir, "2025.01.0", "linear_regression"), "bundle files are missing")

	for _, name := range []string{
		manifest.DefaultModelFile,
		manifest.DefaultScalerFile,
		manifest.DefaultLabelEncodersFile,
		manifest.DefaultFeatureNamesFile,
	} {
		data, err := os.ReadFile(filepath.Join(shippedBundle, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	require.NoError(t, runManifest(&out, dir, "2025.01.0", "linear_regression"))

	m, err := manifest.Load(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "2025.01.0", m.Version)
	assert.Equal(t, "linear_regression", m.ModelType)
	assert.NotEmpty(t, m.CreatedAt)

	var raw map[string]any
	data, _ := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "artifacts")
}
