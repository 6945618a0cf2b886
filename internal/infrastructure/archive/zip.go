package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipPackager implements the packaging port with archive/zip.
type ZipPackager struct{}

// Package compresses the given files into a single archive.
func (ZipPackager) Package(zipPath string, files ...string) error {
	return Package(zipPath, files...)
}

// Package compresses the given files into a single zip archive next to
// them. Entries are stored under their base names only; no absolute paths
// leak into the archive.
func Package(zipPath string, files ...string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, file := range files {
		if err := addFile(zw, file); err != nil {
			zw.Close()
			out.Close()
			os.Remove(zipPath)
			return err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(zipPath)
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// ZipName derives the archive path for an artifact path, swapping the
// extension for .zip.
func ZipName(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return strings.TrimSuffix(artifactPath, ext) + ".zip"
}

func addFile(zw *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create archive entry for %s: %w", path, err)
	}

	if _, err := io.Copy(entry, in); err != nil {
		return fmt.Errorf("write archive entry for %s: %w", path, err)
	}

	return nil
}
