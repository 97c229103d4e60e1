// Package association links files from two collections into keyed clusters.
//
// Every file of the first collection seeds a cluster under a key derived from
// its filename (see KeyDeriver). Files of the second collection are matched
// into those clusters, either by exact key or by the first existing key that
// is a substring of their own. Clusters that never received a second member
// are pruned and reported as warnings.
//
// Basic usage:
//
//	table, err := association.Associate(images, annotations, association.Options{
//	    Deriver: association.NewStemDeriver(),
//	})
//	if err != nil {
//	    return err
//	}
//	for _, files := range table.Flatten() {
//	    fmt.Println(files)
//	}
//
// Key matching is order dependent: keys are tried in the order they were
// seeded, so callers should pass the first collection in a stable order.
// All files in a cluster share one models.Mode; mixing modes is an error.
package association
