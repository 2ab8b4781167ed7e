package highlight

import (
	"path/filepath"
	"strings"
)

// Registry picks a style table by file-type tag. It replaces runtime type
// inspection of the host editor's lexer: the tag is data, derived from the
// file extension, and unknown tags fall through to the plain table.
type Registry struct {
	tables   map[string]*StyleTable
	byExt    map[string]string
	fallback *StyleTable
}

func NewRegistry() *Registry {
	r := &Registry{
		tables:   make(map[string]*StyleTable),
		byExt:    make(map[string]string),
		fallback: PlainTable(),
	}
	r.Register("casebook", CasebookTable(), ".case", ".casebook")
	return r
}

// Register binds a style table to a file-type tag and the extensions that
// select it. Extensions are matched case-insensitively.
func (r *Registry) Register(tag string, table *StyleTable, exts ...string) {
	r.tables[tag] = table
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = tag
	}
}

// TableFor returns the style table for a file-type tag.
func (r *Registry) TableFor(tag string) *StyleTable {
	if t, ok := r.tables[tag]; ok {
		return t
	}
	return r.fallback
}

// DetectType maps a file path to its file-type tag, or "plain" when no
// registered extension matches.
func (r *Registry) DetectType(path string) string {
	if tag, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return tag
	}
	return "plain"
}

// TableForFile combines DetectType and TableFor.
func (r *Registry) TableForFile(path string) *StyleTable {
	return r.TableFor(r.DetectType(path))
}
