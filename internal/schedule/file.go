package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the record in one pretty-printed JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path. The parent directory is
// created on first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.path
}

// Load reads the record file.
func (b *FileBackend) Load(ctx context.Context) (Record, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.path, err)
	}
	return rec, nil
}

// Save writes rec to a temp file next to the target and renames it into
// place, so readers never see a partial file.
func (b *FileBackend) Save(ctx context.Context, rec Record) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".schedule-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", b.path, err)
	}
	return nil
}

// encodeRecord renders rec the way it is persisted: a 2-space indented
// JSON object. A nil record encodes as {}.
func encodeRecord(rec Record) ([]byte, error) {
	if rec == nil {
		rec = Record{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return rec, nil
}
