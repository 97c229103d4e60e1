// Package registry classifies paths into typed file handles.
//
// A Registry holds the known file types. Each type owns a set of extensions;
// a path is only accepted for a type when its suffix is one of them.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/sourcelink/internal/models"
)

// FileType declares a kind of file and the extensions it accepts.
type FileType struct {
	ID         string
	Extensions []models.Extension
}

type registeredType struct {
	FileType
	suffixes map[string]models.Extension
	order    []string // suffixes in declaration order
}

// Registry maps type ids to their extensions.
type Registry struct {
	types map[string]*registeredType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]*registeredType)}
}

// Register adds a file type. Type ids must be unique and a type may not
// declare the same suffix twice.
func (r *Registry) Register(ft FileType) error {
	if ft.ID == "" {
		return fmt.Errorf("file type id cannot be empty")
	}
	if _, exists := r.types[ft.ID]; exists {
		return fmt.Errorf("file type %q already registered", ft.ID)
	}
	if len(ft.Extensions) == 0 {
		return fmt.Errorf("file type %q has no extensions", ft.ID)
	}
	mapping, err := ExtensionMapping(ft.Extensions)
	if err != nil {
		return fmt.Errorf("file type %q: %w", ft.ID, err)
	}

	var order []string
	for _, ext := range ft.Extensions {
		for _, suffix := range ext.Suffixes {
			order = append(order, NormalizeSuffix(suffix))
		}
	}

	r.types[ft.ID] = &registeredType{FileType: ft, suffixes: mapping, order: order}
	return nil
}

// MustRegister is like Register but panics on error. Intended for built-in types.
func (r *Registry) MustRegister(ft FileType) {
	if err := r.Register(ft); err != nil {
		panic(err)
	}
}

// Types returns the registered type ids, sorted.
func (r *Registry) Types() []string {
	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Suffixes returns the suffixes accepted by typeID in declaration order.
func (r *Registry) Suffixes(typeID string) ([]string, error) {
	rt, ok := r.types[typeID]
	if !ok {
		return nil, &UnknownTypeError{TypeID: typeID}
	}
	return append([]string(nil), rt.order...), nil
}

// Lookup returns the extension typeID registered for suffix.
func (r *Registry) Lookup(typeID, suffix string) (models.Extension, error) {
	rt, ok := r.types[typeID]
	if !ok {
		return models.Extension{}, &UnknownTypeError{TypeID: typeID}
	}
	ext, ok := rt.suffixes[NormalizeSuffix(suffix)]
	if !ok {
		return models.Extension{}, &UnsupportedExtensionError{TypeID: typeID, Suffix: suffix}
	}
	return ext, nil
}

// NewFile classifies path as typeID and returns a handle in the given mode.
func (r *Registry) NewFile(typeID, path string, mode models.Mode) (*models.File, error) {
	suffix := filepath.Ext(path)
	ext, err := r.Lookup(typeID, suffix)
	if err != nil {
		if unsupported, ok := err.(*UnsupportedExtensionError); ok {
			unsupported.Path = path
		}
		return nil, err
	}
	f := models.NewFile(path, mode, typeID)
	f.Extension = ext
	return f, nil
}

// Default returns a registry with the built-in file types.
func Default() *Registry {
	r := New()
	r.MustRegister(FileType{
		ID: "image",
		Extensions: []models.Extension{
			{Suffixes: []string{".tif", ".tiff", ".svs", ".ndpi", ".png", ".jpg", ".jpeg"}},
			{Suffixes: []string{".mrxs"}, FolderCoupled: true},
		},
	})
	r.MustRegister(FileType{
		ID: "annotation",
		Extensions: []models.Extension{
			{Suffixes: []string{".xml", ".json", ".geojson"}},
		},
	})
	r.MustRegister(FileType{
		ID: "doc",
		Extensions: []models.Extension{
			{Suffixes: []string{".txt"}},
			{Suffixes: []string{".md"}},
			{Suffixes: []string{".pdf"}},
		},
	})
	return r
}
