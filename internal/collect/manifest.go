package collect

import (
	"fmt"
	"os"

	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
	"gopkg.in/yaml.v3"
)

// Manifest lists files per mode. On disk it looks like:
//
//	training:
//	  - image: {path: /data/case1.tif}
//	    annotation: {path: /data/case1.xml, label_map: {tumor: 1}}
//	test:
//	  - image: {path: /data/case9.tif}
//
// Each entry maps a type id to a descriptor; "path" is required and any other
// key is kept as a file attribute.
type Manifest struct {
	Source  string
	Entries map[models.Mode][]map[string]map[string]any
	order   []models.Mode
}

// Modes returns the modes present in the manifest, in document order.
func (m *Manifest) Modes() []models.Mode {
	return append([]models.Mode(nil), m.order...)
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(expandUser(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, path)
}

// ParseManifest decodes manifest YAML. Every top-level key must name a known
// mode; source is only used in error messages.
func ParseManifest(data []byte, source string) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", source, err)
	}

	m := &Manifest{
		Source:  source,
		Entries: make(map[models.Mode][]map[string]map[string]any),
	}
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest %s: top level must be a mapping of mode names", source)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		mode, err := models.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", source, err)
		}

		var entries []map[string]map[string]any
		if err := root.Content[i+1].Decode(&entries); err != nil {
			return nil, fmt.Errorf("manifest %s: mode %q: %w", source, name, err)
		}
		if _, dup := m.Entries[mode]; !dup {
			m.order = append(m.order, mode)
		}
		m.Entries[mode] = append(m.Entries[mode], entries...)
	}
	return m, nil
}

// FromManifest collects the entries of opts.TypeID listed under opts.Mode.
func FromManifest(reg *registry.Registry, m *Manifest, opts Options) ([]*models.File, error) {
	mode := opts.mode()
	entries, ok := m.Entries[mode]
	if !ok {
		return nil, &MissingModeError{Mode: mode, Source: m.Source, Available: m.Modes()}
	}

	var paths []string
	attrs := make(map[string]map[string]any)
	for i, entry := range entries {
		descriptor, ok := entry[opts.TypeID]
		if !ok {
			continue
		}
		path, ok := descriptor["path"].(string)
		if !ok || path == "" {
			return nil, &ManifestEntryError{
				Source: m.Source,
				Mode:   mode,
				Index:  i,
				TypeID: opts.TypeID,
				Reason: "missing path",
			}
		}

		extra := make(map[string]any, len(descriptor))
		for k, v := range descriptor {
			if k != "path" {
				extra[k] = v
			}
		}
		paths = append(paths, path)
		attrs[path] = extra
	}

	return fromPaths(reg, paths, attrs, opts)
}
