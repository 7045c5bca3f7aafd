package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// File stores one file per key under dir. Keys are hex-encoded into file
// names so scoped keys never escape the directory.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile creates the directory if needed.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &File{fs: fsys, dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key))+".json")
}

func (f *File) GetItem(_ context.Context, key string) (string, bool, error) {
	b, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// SetItem writes through a temp file and rename so readers never see a partial value.
func (f *File) SetItem(_ context.Context, key, value string) error {
	target := f.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return f.fs.Rename(tmp, target)
}

func (f *File) RemoveItem(_ context.Context, key string) error {
	err := f.fs.Remove(f.path(key))
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
