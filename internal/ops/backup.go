package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupDataDir archives the growthos stores found under srcDir into a
// gzipped tarball at archivePath. Only store files are archived, so a
// data directory littered with scratch files or old restore output
// backs up the same as a clean one. The JSON stores are integrity
// checked first; a corrupt store fails the backup instead of producing
// an archive that cannot be restored from.
func BackupDataDir(srcDir, archivePath string) error {
	if strings.TrimSpace(srcDir) == "" {
		return errors.New("source directory is required")
	}
	if strings.TrimSpace(archivePath) == "" {
		return errors.New("archive path is required")
	}
	srcDir = filepath.Clean(srcDir)
	archivePath = filepath.Clean(archivePath)

	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", srcDir)
	}
	if err := CheckStores(srcDir); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if !IsStoreFile(rel) {
			return nil
		}
		return addStoreFile(tw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addStoreFile(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}

// RestoreDataDir unpacks a backup archive into targetDir. Archive
// entries are restricted to paths inside targetDir and to the known
// store files, so a tampered archive cannot write elsewhere.
func RestoreDataDir(archivePath, targetDir string) error {
	if strings.TrimSpace(archivePath) == "" {
		return errors.New("archive path is required")
	}
	if strings.TrimSpace(targetDir) == "" {
		return errors.New("target directory is required")
	}
	archivePath = filepath.Clean(archivePath)
	targetDir = filepath.Clean(targetDir)

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		rel, err := safeArchivePath(hdr.Name)
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !IsStoreFile(rel) {
			return fmt.Errorf("archive entry %q is not a growthos store file", hdr.Name)
		}

		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := writeRestoredFile(dst, tr, hdr.FileInfo().Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func writeRestoredFile(dst string, r io.Reader, perm fs.FileMode) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeArchivePath normalizes an archive entry name and rejects absolute
// paths and parent-directory escapes.
func safeArchivePath(name string) (string, error) {
	rel := filepath.ToSlash(filepath.Clean(name))
	if rel == "." || rel == "" {
		return "", fmt.Errorf("archive entry has empty path")
	}
	if strings.HasPrefix(rel, "/") || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return rel, nil
}
