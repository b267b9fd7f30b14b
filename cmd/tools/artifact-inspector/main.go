// cmd/tools/artifact-inspector/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func main() {
	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	predictCmd := flag.NewFlagSet("predict", flag.ExitOnError)
	manifestCmd := flag.NewFlagSet("manifest", flag.ExitOnError)

	showDir := showCmd.String("dir", "artifacts", "Artifact bundle directory")
	showManifest := showCmd.String("manifest", "manifest.json", "Manifest file name inside the bundle")

	validateDir := validateCmd.String("dir", "artifacts", "Artifact bundle directory")
	validateManifest := validateCmd.String("manifest", "manifest.json", "Manifest file name inside the bundle")
	validateConfig := validateCmd.String("config", "", "Config file whose features.columns table is checked (default: built-in labels)")

	predictDir := predictCmd.String("dir", "artifacts", "Artifact bundle directory")
	predictManifest := predictCmd.String("manifest", "manifest.json", "Manifest file name inside the bundle")
	predictFile := predictCmd.String("file", "", "JSON request body to score ('-' for stdin)")

	manifestDir := manifestCmd.String("dir", "artifacts", "Artifact bundle directory")
	manifestVersion := manifestCmd.String("version", "", "Bundle version (e.g., 2024.06.1)")
	manifestModelType := manifestCmd.String("modelType", "", "Model kind recorded in the manifest")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "show":
		showCmd.Parse(os.Args[2:])
		err = runShow(os.Stdout, *showDir, *showManifest)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err = runValidate(os.Stdout, *validateDir, *validateManifest, *validateConfig)

	case "predict":
		predictCmd.Parse(os.Args[2:])
		if *predictFile == "" {
			fmt.Println("Error: -file is required for predict.")
			predictCmd.Usage()
			os.Exit(1)
		}
		var in io.Reader = os.Stdin
		if *predictFile != "-" {
			f, openErr := os.Open(*predictFile)
			if openErr != nil {
				fail(openErr)
			}
			defer f.Close()
			in = f
		}
		err = runPredict(os.Stdout, *predictDir, *predictManifest, in)

	case "manifest":
		manifestCmd.Parse(os.Args[2:])
		if *manifestVersion == "" {
			fmt.Println("Error: -version is required for manifest.")
			manifestCmd.Usage()
			os.Exit(1)
		}
		err = runManifest(os.Stdout, *manifestDir, *manifestVersion, *manifestModelType)

	case "help":
		fallthrough
	default:
		help()
	}

	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	color.Red("Error: %v", err)
	os.Exit(1)
}

func help() {
	fmt.Print(`
Usage: artifact-inspector <command> [flags]

Commands:
  show      Print the manifest, feature order, encoders and model of a bundle
  validate  Load a bundle and check it against the request field table
  predict   Score one JSON request body against a bundle
  manifest  Write manifest.json for a bundle that has none
  help      Show this help message

Examples:
  artifact-inspector show -dir artifacts
  artifact-inspector validate -dir artifacts -config configs/config.yaml
  artifact-inspector predict -dir artifacts -file request.json
  artifact-inspector manifest -dir artifacts -version 2024.06.1 -modelType linear_regression

Use 'artifact-inspector <command> -h' for more information about a command.
`)
}
