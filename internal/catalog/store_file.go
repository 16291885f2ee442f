package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"BankCatalog/internal/locale"
)

// FileSource reads one JSON resource per locale from a directory:
// products.<locale>.json, falling back to products.json.
type FileSource struct {
	fsys fs.FS
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{fsys: os.DirFS(dir)}
}

func NewFSSource(fsys fs.FS) *FileSource {
	return &FileSource{fsys: fsys}
}

func (s *FileSource) Ping(ctx context.Context) error {
	_, err := fs.Stat(s.fsys, "products.json")
	return err
}

func (s *FileSource) Products(ctx context.Context, l locale.Locale) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := fs.ReadFile(s.fsys, resourceName(l))
	if errors.Is(err, fs.ErrNotExist) {
		raw, err = fs.ReadFile(s.fsys, "products.json")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	ps, err := decodeCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}
	return ps, nil
}

func resourceName(l locale.Locale) string {
	return fmt.Sprintf("products.%s.json", l)
}
