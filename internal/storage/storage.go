package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"go-presensi/internal/shared/apperror"

	"github.com/google/uuid"
)

// Store menyimpan berkas bukti (foto presensi, lampiran cuti). Berkas harus
// sudah tahan lama di disk sebelum path-nya direferensikan baris database;
// kegagalan menyimpan dilaporkan sebagai error transient.
//
//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	Save(ctx context.Context, kind, filename string, src io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

var ErrStorageUnavailable = apperror.New(
	apperror.CodeServiceUnavailable,
	"file storage is temporarily unavailable",
	http.StatusServiceUnavailable,
)

type diskStore struct {
	root string
}

func NewDiskStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &diskStore{root: root}, nil
}

// Save menulis src ke <root>/<kind>/<uuid><ext> dan mengembalikan path
// relatif terhadap root. fsync dilakukan sebelum kembali agar referensi di
// database tidak pernah menunjuk berkas yang belum durable.
func (s *diskStore) Save(ctx context.Context, kind, filename string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"file storage is temporarily unavailable", http.StatusServiceUnavailable)
	}

	name := uuid.New().String() + filepath.Ext(filename)
	fullPath := filepath.Join(dir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"file storage is temporarily unavailable", http.StatusServiceUnavailable)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"file storage is temporarily unavailable", http.StatusServiceUnavailable)
	}

	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"file storage is temporarily unavailable", http.StatusServiceUnavailable)
	}

	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"file storage is temporarily unavailable", http.StatusServiceUnavailable)
	}

	return filepath.Join(kind, name), nil
}

// Remove menghapus berkas; berkas yang sudah tidak ada bukan error.
func (s *diskStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.root, path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
