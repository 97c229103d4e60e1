package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harrison/sourcelink/internal/association"
)

// PrintAssociations writes one block per cluster, in table order:
//
//	case1   training
//	  image        /data/case1.tif
//	  annotation   /labels/case1.xml
func PrintAssociations(out io.Writer, table *association.Table) error {
	tw := tabwriter.NewWriter(out, 0, 4, 3, ' ', 0)
	for key, c := range table.All() {
		fmt.Fprintf(tw, "%s\t%s\n", key, c.Mode())
		for _, typeID := range c.TypeIDs() {
			for _, f := range c.Files(typeID) {
				fmt.Fprintf(tw, "  %s\t%s\n", typeID, f.Path)
			}
		}
	}
	return tw.Flush()
}
