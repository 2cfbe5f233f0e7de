package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/donutsmp-bot/tools/dashgen/dashboards"
	"github.com/donaldgifford/donutsmp-bot/tools/dashgen/rules"
	"github.com/donaldgifford/donutsmp-bot/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

// Output paths relative to Config.OutputDir.
var (
	dashboardPath = filepath.Join("grafana", "data", dashboards.UID+".json")
	recordingPath = filepath.Join("prometheus", "donutbot-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "donutbot-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

func generate(cfg Config) ([]artifact, error) {
	var artifacts []artifact

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		if res := validate.Dashboard(dash, KnownMetrics); !res.Ok() {
			return nil, fmt.Errorf("dashboard: %v", res.Errors)
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		for _, rf := range []struct {
			path string
			cr   rules.PrometheusRule
		}{
			{path: recordingPath, cr: rules.RecordingRules()},
			{path: alertsPath, cr: rules.AlertRules()},
		} {
			if res := validate.Rules(rf.cr, KnownMetrics); !res.Ok() {
				return nil, fmt.Errorf("%s: %v", rf.cr.Metadata.Name, res.Errors)
			}
			data, err := yaml.Marshal(rf.cr)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", rf.cr.Metadata.Name, err)
			}
			artifacts = append(artifacts, artifact{path: rf.path, data: append([]byte(generatedHeader), data...)})
		}
	}

	return artifacts, nil
}
