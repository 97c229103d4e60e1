package association

import "github.com/harrison/sourcelink/internal/models"

// Cluster holds the files that share one association key, grouped by type id.
// All members share the mode the cluster was created with.
type Cluster struct {
	key     string
	mode    models.Mode
	typeIDs []string // first-insertion order
	files   map[string][]*models.File
}

func newCluster(key string, mode models.Mode) *Cluster {
	return &Cluster{
		key:   key,
		mode:  mode,
		files: make(map[string][]*models.File),
	}
}

// Key returns the association key.
func (c *Cluster) Key() string {
	return c.key
}

// Mode returns the mode shared by all members.
func (c *Cluster) Mode() models.Mode {
	return c.mode
}

// Add appends f under its type id. A file whose mode differs from the
// cluster's mode is rejected with a *ModeConflictError and not added.
func (c *Cluster) Add(f *models.File) error {
	if f.Mode != c.mode {
		return &ModeConflictError{
			Key:      c.key,
			Path:     f.Path,
			Expected: c.mode,
			Got:      f.Mode,
		}
	}
	if _, ok := c.files[f.TypeID]; !ok {
		c.typeIDs = append(c.typeIDs, f.TypeID)
	}
	c.files[f.TypeID] = append(c.files[f.TypeID], f)
	return nil
}

// TypeIDs returns the type ids present in the cluster in first-insertion order.
func (c *Cluster) TypeIDs() []string {
	return append([]string(nil), c.typeIDs...)
}

// Files returns the members stored under typeID.
func (c *Cluster) Files(typeID string) []*models.File {
	return append([]*models.File(nil), c.files[typeID]...)
}

// Len returns the total number of members.
func (c *Cluster) Len() int {
	n := 0
	for _, files := range c.files {
		n += len(files)
	}
	return n
}

// Flatten returns all members, type by type, in insertion order.
func (c *Cluster) Flatten() []*models.File {
	out := make([]*models.File, 0, c.Len())
	for _, typeID := range c.typeIDs {
		out = append(out, c.files[typeID]...)
	}
	return out
}

// unpaired reports whether the cluster holds at most one type id with at most
// one file. Two files of the same type under one key count as paired.
func (c *Cluster) unpaired() bool {
	if len(c.typeIDs) > 1 {
		return false
	}
	if len(c.typeIDs) == 0 {
		return true
	}
	return len(c.files[c.typeIDs[0]]) <= 1
}

func (c *Cluster) paths() []string {
	members := c.Flatten()
	paths := make([]string, 0, len(members))
	for _, f := range members {
		paths = append(paths, f.Path)
	}
	return paths
}
