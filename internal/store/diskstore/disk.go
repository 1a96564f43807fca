// Package diskstore keeps one file per game record under a root directory.
package diskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/codec"
	"github.com/lgbarn/pgnview-go/internal/codec/noopcodec"
	"github.com/lgbarn/pgnview-go/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store is a disk-based storage backend. Records are JSON documents,
// optionally compressed by the codec, named <id>.json[.<ext>].
type Store struct {
	root   string
	codec  codec.Codec
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// New creates a disk store rooted at dir, creating the directory if
// needed. A nil codec stores records uncompressed.
func New(dir string, c codec.Codec, logger *zap.Logger) (*Store, error) {
	if c == nil {
		c = noopcodec.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat store directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return &Store{
		root:   dir,
		codec:  c,
		logger: logger.Named("diskstore"),
	}, nil
}

// Put writes rec to a temporary file and renames it into place, so a
// reader never sees a partial record.
func (s *Store) Put(ctx context.Context, rec store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !store.ValidID(rec.ID) {
		return fmt.Errorf("diskstore: invalid id %q", rec.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	data, err := s.encode(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-"+rec.ID+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing record: %w", err)
	}
	if err := os.Rename(tmpName, s.recordPath(rec.ID)); err != nil {
		return fmt.Errorf("renaming record: %w", err)
	}
	return nil
}

// Get reads the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.Record{}, store.ErrClosed
	}
	if !store.ValidID(id) {
		return store.Record{}, store.ErrNotFound
	}
	return s.read(s.recordPath(id))
}

// List reads every record, ordered by AddedAt then id. Unreadable files
// are logged and skipped.
func (s *Store) List(ctx context.Context) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	suffix := s.suffix()
	var records []store.Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, suffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := s.read(filepath.Join(s.root, name))
		if err != nil {
			s.logger.Warn("skipping unreadable record", zap.String("file", name), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].AddedAt.Equal(records[j].AddedAt) {
			return records[i].AddedAt.Before(records[j].AddedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if !store.ValidID(id) {
		return store.ErrNotFound
	}

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("removing record: %w", err)
	}
	return nil
}

// Close marks the store closed. Closing twice is harmless.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) encode(rec store.Record) ([]byte, error) {
	var buf bytes.Buffer
	w, err := s.codec.Writer(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		w.Close()
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing record: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) read(path string) (store.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.Record{}, store.ErrNotFound
		}
		return store.Record{}, fmt.Errorf("reading record: %w", err)
	}

	r, err := s.codec.Reader(bytes.NewReader(raw))
	if err != nil {
		return store.Record{}, fmt.Errorf("creating decompressor: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return store.Record{}, fmt.Errorf("decompressing record: %w", err)
	}

	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return store.Record{}, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}

// suffix returns the file name suffix of records, e.g. ".json.zst".
func (s *Store) suffix() string {
	if ext := s.codec.Extension(); ext != "" {
		return ".json." + ext
	}
	return ".json"
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.root, id+s.suffix())
}
