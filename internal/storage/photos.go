package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kreeda/idcard/internal/util"
)

// PhotoDir stores uploaded photos as individual files. Files are never
// deleted or deduplicated.
type PhotoDir struct {
	dir string
}

func NewPhotoDir(dir string) (*PhotoDir, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create photo dir %s -> %w", dir, err)
	}
	return &PhotoDir{dir: dir}, nil
}

func (p *PhotoDir) Dir() string {
	return p.dir
}

// Save writes data to <dir>/<random hex id>_<original base name> and returns
// that path.
func (p *PhotoDir) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := util.EnsureDir(p.dir); err != nil {
		return "", fmt.Errorf("create photo dir %s -> %w", p.dir, err)
	}

	path := filepath.Join(p.dir, UniqueName(filename))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo %s -> %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write photo %s -> %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close photo %s -> %w", path, err)
	}
	return path, nil
}

// UniqueName prefixes the base name of filename with a dashless UUIDv4.
func UniqueName(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + base
}
