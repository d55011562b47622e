package xl

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the interface for writing package parts.
// Implementations can write to ZIP archives, directory structures or memory.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage writes package parts to a directory structure on disk.
// This is useful for debugging as it allows inspection of generated XML files.
type DirStorage struct {
	Dir string // Root directory path
}

// ZipStorage writes package parts to a ZIP archive, creating an .xlsx file.
type ZipStorage struct {
	z *zip.Writer
}

// NewDirStorage creates a new directory-based storage that writes files to the specified directory.
// The directory will be created if it doesn't exist.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{
		Dir: dir,
	}
}

// WriteBlob writes a part to the directory structure.
// Creates any necessary parent directories automatically.
func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, filepath.FromSlash(path))
	err := os.MkdirAll(filepath.Dir(fn), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0666)
}

// NewZipStorage creates a new ZIP-based storage that writes to the given writer.
// Parts are deflated.
func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// WriteBlob writes a part to the ZIP archive.
func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.CreateHeader(&zip.FileHeader{
		Name:   path,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = f.Write(blob)
	return err
}

// Close finalizes the ZIP archive. Must be called after all writes are complete.
// Failure to call Close will result in an invalid/corrupted package.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

// MemStorage keeps parts in memory, keyed by path. Order records the
// sequence in which paths were first written.
type MemStorage struct {
	Blobs map[string][]byte
	Order []string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{Blobs: map[string][]byte{}}
}

func (ms *MemStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	if _, ok := ms.Blobs[path]; !ok {
		ms.Order = append(ms.Order, path)
	}
	ms.Blobs[path] = blob
	return nil
}

// Parts returns the stored blobs listed in names, in that order. Names that
// were never written are skipped.
func (ms *MemStorage) Parts(names []string) []Part {
	parts := make([]Part, 0, len(names))
	for _, name := range names {
		if blob, ok := ms.Blobs[name]; ok {
			parts = append(parts, Part{Name: name, Data: blob})
		}
	}
	return parts
}
