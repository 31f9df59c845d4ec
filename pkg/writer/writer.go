// Package writer performs the only filesystem writes in a run: it
// creates the destination directory tree and writes each merged file
// through a synthfs operation pipeline. Writes are not transactional;
// a mid-write failure can leave a partially populated destination.
package writer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Writer writes a scaffolded project to disk.
type Writer struct {
	logger     zerolog.Logger
	dryRun     bool
	filesystem synthfs.FileSystem
}

// New creates a Writer. In dry-run mode operations are logged but
// nothing touches the disk.
func New(dryRun bool) *Writer {
	return &Writer{
		logger:     logging.GetLogger("writer"),
		dryRun:     dryRun,
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// WriteProject creates destDir and writes every merged file under it.
// The destination must not already exist; that is checked before any
// write occurs.
func (w *Writer) WriteProject(destDir string, files []types.MergedFile) error {
	abs, err := filepath.Abs(destDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot resolve destination: %s", destDir)
	}

	if _, err := os.Stat(abs); err == nil {
		return errors.Newf(errors.ErrDestExists,
			"destination directory already exists: %s", abs)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"cannot access destination: %s", abs)
	}

	dirs := collectDirs(abs, files)

	if w.dryRun {
		for _, dir := range dirs {
			w.logger.Info().Str("dir", dir).Msg("Would create directory")
		}
		for _, f := range files {
			w.logger.Info().
				Str("path", filepath.Join(abs, filepath.FromSlash(f.Path))).
				Int("contentLen", len(f.Text)).
				Msg("Would write file")
		}
		return nil
	}

	pipeline := synthfs.NewMemPipeline()

	for _, dir := range dirs {
		op, err := w.createDirOperation(dir)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to queue directory creation: %s", dir)
		}
	}

	for _, f := range files {
		target := filepath.Join(abs, filepath.FromSlash(f.Path))
		op, err := w.createFileOperation(target, f.Text)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"failed to queue file write: %s", target)
		}
	}

	executor := synthfs.NewExecutor()
	w.logger.Info().
		Str("dest", abs).
		Int("dirs", len(dirs)).
		Int("files", len(files)).
		Msg("Writing project")

	result := executor.Run(context.Background(), pipeline, w.filesystem)
	if result.GetError() != nil {
		return errors.Wrapf(result.GetError(), errors.ErrFileWrite,
			"failed to write project to %s", abs)
	}

	return nil
}

// collectDirs returns every directory that must exist under (and
// including) dest, parents before children.
func collectDirs(dest string, files []types.MergedFile) []string {
	set := map[string]bool{dest: true}
	for _, f := range files {
		dir := filepath.Dir(filepath.FromSlash(f.Path))
		for dir != "." && dir != "/" {
			set[filepath.Join(dest, dir)] = true
			dir = filepath.Dir(dir)
		}
	}

	dirs := make([]string, 0, len(set))
	for dir := range set {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

func (w *Writer) createDirOperation(target string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: 0755,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (w *Writer) createFileOperation(target, content string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", target))
	createOp := operations.NewCreateFileOperation(opID, relPath)
	createOp.SetItem(&fileItem{
		path:    relPath,
		content: []byte(content),
		mode:    0644,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

// Item types for synthfs operations

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
