package highlight

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Theme maps style ids to terminal colors for the CLI renderer. The editor
// itself never sees a Theme; it consumes style ids directly.
type Theme struct {
	Name   string            `yaml:"name"`
	Styles map[string]string `yaml:"styles"`

	colors map[int]*color.Color
}

var styleNames = map[string]int{
	"default":   StyleDefault,
	"keyword":   StyleKeyword,
	"string":    StyleString,
	"section":   StyleSection,
	"action":    StyleAction,
	"character": StyleCharacter,
	"comment":   StyleComment,
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// DefaultTheme is compiled in and used when no theme is configured.
func DefaultTheme() *Theme {
	t := &Theme{
		Name: "default",
		Styles: map[string]string{
			"keyword":   "yellow",
			"string":    "green",
			"section":   "cyan",
			"action":    "magenta",
			"character": "red",
			"comment":   "blue",
		},
	}
	if err := t.compile(); err != nil {
		panic(err)
	}
	return t
}

// LoadTheme reads a yaml theme file. Unknown style or color names are
// errors; omitted styles render unstyled.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("load theme %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	if err := t.compile(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	return &t, nil
}

func (t *Theme) compile() error {
	t.colors = make(map[int]*color.Color, len(t.Styles))
	for styleName, colorName := range t.Styles {
		id, ok := styleNames[styleName]
		if !ok {
			return fmt.Errorf("unknown style %q", styleName)
		}
		attr, ok := colorNames[strings.ToLower(colorName)]
		if !ok {
			return fmt.Errorf("style %s: unknown color %q", styleName, colorName)
		}
		t.colors[id] = color.New(attr)
	}
	return nil
}

// Render paints span according to runs. Styles without a configured color
// pass through unchanged.
func (t *Theme) Render(span string, runs []StyleRun) string {
	var sb strings.Builder
	pos := 0
	for _, run := range runs {
		text := span[pos : pos+run.Length]
		if c, ok := t.colors[run.StyleID]; ok {
			sb.WriteString(c.Sprint(text))
		} else {
			sb.WriteString(text)
		}
		pos += run.Length
	}
	return sb.String()
}
