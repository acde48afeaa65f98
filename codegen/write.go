package codegen

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

// WriteDir writes files below dir, creating directories as needed.
// Existing files with the same path are replaced.
func WriteDir(dir string, files []File) error {
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", f.Path)
		}
		if err := os.WriteFile(target, []byte(f.Content), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", target)
		}
		logger.Debugw("Wrote file", logger.FieldFile, target, logger.FieldModule, f.Module)
	}
	return nil
}

// WriteZip packs files into a zip archive at path. Entries are sorted by
// path so archives of identical output are byte-identical apart from
// timestamps.
func WriteZip(path string, files []File) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create archive %s", path)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close archive %s", path)
		}
	}()

	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	zw := zip.NewWriter(out)
	for _, f := range sorted {
		w, err := zw.Create(f.Path)
		if err != nil {
			return errors.Wrapf(err, "failed to add %s to archive", f.Path)
		}
		if _, err := w.Write([]byte(f.Content)); err != nil {
			return errors.Wrapf(err, "failed to write %s to archive", f.Path)
		}
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, "failed to finish archive %s", path)
	}
	logger.Debugw("Wrote archive", logger.FieldFile, path, logger.FieldCount, len(sorted))
	return nil
}
