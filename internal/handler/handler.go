package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Paintersrp/kf/internal/pathutil"
)

// FileHandler wraps the filesystem operations the browser and the trash
// commands share. Deletions are soft: files move into trashDir and can be
// restored until the user empties it by hand.
type FileHandler struct {
	trashDir string
}

func NewFileHandler(trashDir string) *FileHandler {
	return &FileHandler{trashDir: trashDir}
}

// Create writes a new file, refusing to overwrite an existing one.
func (h *FileHandler) Create(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (h *FileHandler) Mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Rename moves a file or directory, refusing to clobber the destination.
func (h *FileHandler) Rename(oldPath, newPath string) error {
	if pathutil.Exists(newPath) {
		return fmt.Errorf("destination %q already exists", newPath)
	}
	return os.Rename(oldPath, newPath)
}

// Trash moves path into the trash directory and returns the path it landed
// on. Basename collisions get a numeric suffix before the extension.
func (h *FileHandler) Trash(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	if err := os.MkdirAll(h.trashDir, 0o755); err != nil {
		return "", err
	}

	target := h.uniqueTrashName(filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// Restore moves a trashed entry into destDir and returns the restored path.
func (h *FileHandler) Restore(name, destDir string) (string, error) {
	source := filepath.Join(h.trashDir, name)
	if !pathutil.Exists(source) {
		return "", fmt.Errorf("%q is not in the trash", name)
	}

	if destDir == "" {
		destDir = "."
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	target := filepath.Join(destDir, name)
	if pathutil.Exists(target) {
		return "", fmt.Errorf("destination %q already exists", target)
	}
	if err := os.Rename(source, target); err != nil {
		return "", err
	}
	return target, nil
}

// ListTrash returns the trashed entry names sorted. A missing trash
// directory is an empty trash, not an error.
func (h *FileHandler) ListTrash() ([]string, error) {
	entries, err := os.ReadDir(h.trashDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (h *FileHandler) uniqueTrashName(base string) string {
	target := filepath.Join(h.trashDir, base)
	if !pathutil.Exists(target) {
		return target
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; ; i++ {
		candidate := filepath.Join(h.trashDir, fmt.Sprintf("%s-%d%s", stem, i, ext))
		if !pathutil.Exists(candidate) {
			return candidate
		}
	}
}
