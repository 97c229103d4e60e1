package copier

import (
	"context"

	"github.com/harrison/sourcelink/internal/collect"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
	"github.com/hashicorp/go-multierror"
)

// CopyFile copies a handle into destFolder and returns a handle for the copy.
// Folder-coupled files bring their sibling stem folder along, copied first.
// Both transfers are attempted; any failure fails the handle.
func (c *Copier) CopyFile(ctx context.Context, f *models.File, destFolder string) (*models.File, error) {
	paths := []string{f.Path}
	if f.Extension.FolderCoupled {
		paths = []string{f.CoupledFolder(), f.Path}
	}
	copied, err := c.CopyAll(ctx, paths, destFolder)
	if err != nil {
		return nil, err
	}
	return f.WithPath(copied[len(copied)-1]), nil
}

// ProgressReporter is implemented by loggers that render copy progress.
// A Copier whose logger implements it reports after every handle.
type ProgressReporter interface {
	LogCopyProgress(done, total int)
}

// CopyFiles copies handles into destFolder, continuing past failures.
func (c *Copier) CopyFiles(ctx context.Context, files []*models.File, destFolder string) ([]*models.File, error) {
	var (
		merr   *multierror.Error
		copied []*models.File
	)
	progress, _ := c.logger.(ProgressReporter)
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			merr = multierror.Append(merr, err)
			break
		}
		moved, err := c.CopyFile(ctx, f, destFolder)
		if progress != nil {
			progress.LogCopyProgress(i+1, len(files))
		}
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		copied = append(copied, moved)
	}
	return copied, merr.ErrorOrNil()
}

// CopyFromManifest copies the entries of opts.TypeID listed under each of
// modes. opts.Mode is ignored.
func (c *Copier) CopyFromManifest(ctx context.Context, reg *registry.Registry, m *collect.Manifest, destFolder string, modes []models.Mode, opts collect.Options) ([]*models.File, error) {
	var files []*models.File
	for _, mode := range modes {
		opts.Mode = mode
		found, err := collect.FromManifest(reg, m, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return c.CopyFiles(ctx, files, destFolder)
}
