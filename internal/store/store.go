// Package store persists entity collections as line-oriented delimited
// text files, one CSV record per line. Fields are quoted per RFC 4180,
// so rows written by the legacy unquoted format still parse, while
// embedded commas no longer corrupt the layout.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrMalformedRecord reports a row that cannot be decoded. The whole
	// load fails rather than silently skipping the row.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStorageUnavailable reports an unreadable or unwritable backing file.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Codec translates one entity to and from its positional field layout.
type Codec[T any] interface {
	Encode(T) []string
	Decode([]string) (T, error)
}

// Store reads and writes one backing file for one entity type.
type Store[T any] struct {
	path  string
	codec Codec[T]
}

// New binds a codec to a backing file path.
func New[T any](path string, codec Codec[T]) *Store[T] {
	return &Store[T]{path: path, codec: codec}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// LoadAll reads every record in file order. A missing file yields an
// empty collection; a row the codec rejects fails the whole load with
// ErrMalformedRecord.
func (s *Store[T]) LoadAll() ([]T, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // codecs enforce their own field counts
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, s.path, err)
	}

	records := make([]T, 0, len(rows))
	for i, row := range rows {
		rec, err := s.codec.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedRecord, s.path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append writes one record to the end of the file, creating it if needed.
func (s *Store[T]) Append(rec T) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.codec.Encode(rec)); err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrStorageUnavailable, s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return nil
}

// OverwriteAll replaces the file with a full snapshot of the collection,
// in collection order. The snapshot is written to a temp file and renamed
// into place so a crash mid-write cannot truncate the original.
func (s *Store[T]) OverwriteAll(records []T) error {
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, tmp, err)
	}

	w := csv.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(s.codec.Encode(rec)); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, tmp, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %v", ErrStorageUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %v", ErrStorageUnavailable, tmp, err)
	}
	return nil
}
