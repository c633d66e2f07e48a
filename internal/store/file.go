package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileKV keeps every key in one JSON document on disk and rewrites the
// whole file on each Put. This mirrors the read-modify-write model the
// directory assumes: last writer wins, no partial updates.
type FileKV struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileKV opens (or creates) the store at path.
func NewFileKV(path string) (*FileKV, error) {
	f := &FileKV{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.data); err != nil {
			return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
		}
	}
	return f, nil
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (f *FileKV) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := make(json.RawMessage, len(value))
	copy(v, value)
	f.data[key] = v
	return f.flush()
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// flush rewrites the backing file. Callers must hold the mutex.
func (f *FileKV) flush() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}
