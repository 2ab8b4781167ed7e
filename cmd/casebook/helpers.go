package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/casebook/engine"
	"github.com/dhamidi/casebook/highlight"
)

const version = "0.1.0"

// newEngineForFile builds an engine with the configured override and the
// style table matching the file's type.
func newEngineForFile(path string) (*engine.Engine, error) {
	overridePath := config.Override
	if overridePath == "" {
		overridePath = engine.OverrideFileName
	}
	registry := highlight.NewRegistry()
	return engine.New(engine.Options{
		OverridePath: overridePath,
		Table:        registry.TableForFile(path),
	})
}

func loadTheme() (*highlight.Theme, error) {
	if config.Theme == "" || config.Theme == "default" {
		return highlight.DefaultTheme(), nil
	}
	return highlight.LoadTheme(config.Theme)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
