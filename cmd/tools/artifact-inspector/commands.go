package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cgpa-predictor/internal/artifacts"
	"cgpa-predictor/internal/common/config"
	"cgpa-predictor/internal/inference"
	"cgpa-predictor/internal/student"
	"cgpa-predictor/pkg/manifest"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func runShow(w io.Writer, dir, manifestFile string) error {
	bundle, err := artifacts.Load(dir, manifestFile)
	if err != nil {
		return err
	}
	m := bundle.Manifest()

	heading(w, "Manifest")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"version", m.Version})
	table.Append([]string{"createdAt", m.CreatedAt})
	table.Append([]string{"target", m.Target})
	for _, e := range m.Entries() {
		table.Append([]string{e.Name, e.File})
	}
	table.Render()

	heading(w, "Model")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Artifact", "Kind", "Features"})
	table.Append([]string{"model", bundle.Model().Kind(), strconv.Itoa(bundle.Model().NFeatures())})
	table.Append([]string{"scaler", bundle.Scaler().Kind(), strconv.Itoa(bundle.Scaler().NFeatures())})
	table.Render()

	heading(w, "Feature Order")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Column", "Encoding"})
	for i, name := range bundle.FeatureNames() {
		encoding := "numeric"
		if enc, ok := bundle.Encoders().Get(name); ok {
			encoding = fmt.Sprintf("label (%d classes)", len(enc.Classes()))
		}
		table.Append([]string{strconv.Itoa(i), name, encoding})
	}
	table.Render()

	heading(w, "Label Encoders")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Classes"})
	for _, col := range bundle.Encoders().Columns() {
		enc, _ := bundle.Encoders().Get(col)
		table.Append([]string{col, strings.Join(enc.Classes(), ", ")})
	}
	table.Render()

	printWarnings(w, bundle.Warnings())
	return nil
}

func runValidate(w io.Writer, dir, manifestFile, configPath string) error {
	columns := student.DefaultColumns()
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		if len(cfg.Features.Columns) > 0 {
			columns = cfg.Features.Columns
		}
	}

	if _, err := buildPipeline(dir, manifestFile, columns, w); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "Bundle %s is valid.\n", dir)
	return nil
}

func runPredict(w io.Writer, dir, manifestFile string, body io.Reader) error {
	pipeline, err := buildPipeline(dir, manifestFile, student.DefaultColumns(), w)
	if err != nil {
		return err
	}

	var req student.Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	in, err := student.Validate(req)
	if err != nil {
		return err
	}

	res, err := pipeline.Predict(context.Background(), in)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Raw", "Predicted CGPA", "Range", "Message"})
	table.Append([]string{
		strconv.FormatFloat(res.RawPrediction, 'f', 6, 64),
		strconv.FormatFloat(res.PredictedCGPA, 'f', 2, 64),
		res.Band.Range,
		res.Band.Message,
	})
	table.Render()
	return nil
}

func runManifest(w io.Writer, dir, version, modelType string) error {
	m := manifest.Default()
	m.Version = version
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	m.ModelType = modelType

	for _, e := range m.Entries() {
		if _, err := os.Stat(filepath.Join(dir, e.File)); err != nil {
			return fmt.Errorf("artifact %s: %w", e.Name, err)
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	color.New(color.FgGreen).Fprintf(w, "Wrote %s\n", path)
	return nil
}

func buildPipeline(dir, manifestFile string, columns map[string]string, w io.Writer) (*inference.Pipeline, error) {
	bundle, err := artifacts.Load(dir, manifestFile)
	if err != nil {
		return nil, err
	}
	printWarnings(w, bundle.Warnings())

	mapper, err := student.NewMapper(columns)
	if err != nil {
		return nil, err
	}
	return inference.NewPipeline(bundle, mapper)
}

func heading(w io.Writer, title string) {
	color.New(color.FgYellow).Fprintf(w, "\n%s\n", title)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		color.New(color.FgYellow).Fprintf(w, "warning: %s\n", msg)
	}
}
