package highlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDefaultThemeRenderCoversSpan(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	span := "# SETUP intro\n"
	runs := []StyleRun{
		{Length: 1, StyleID: StyleKeyword},
		{Length: 1, StyleID: StyleDefault},
		{Length: 5, StyleID: StyleSection},
		{Length: 7, StyleID: StyleDefault},
	}
	if got := DefaultTheme().Render(span, runs); got != span {
		t.Errorf("Render with colors disabled = %q, want %q", got, span)
	}
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dark.yaml")
	src := "name: dark\nstyles:\n  keyword: red\n  string: green\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.Name != "dark" {
		t.Errorf("Name = %q, want dark", theme.Name)
	}
	if _, ok := theme.colors[StyleKeyword]; !ok {
		t.Error("keyword color missing after load")
	}
	if _, ok := theme.colors[StyleComment]; ok {
		t.Error("comment color present, want omitted styles unstyled")
	}
}

func TestLoadThemeErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown-style", "styles:\n  shiny: red\n", "unknown style"},
		{"unknown-color", "styles:\n  keyword: chartreuse\n", "unknown color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadTheme(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadTheme error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
