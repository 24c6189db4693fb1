package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/futig/cpf-explainer/internal/entity"
)

// maxRecordSize bounds a single serialized record; large embedding models produce long lines.
const maxRecordSize = 16 * 1024 * 1024

// WriteRecords replaces the file at path with one JSON record per line.
// The file is written to a temporary sibling and renamed into place.
func WriteRecords(path string, records []entity.CorpusRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeRecords(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace corpus file: %w", err)
	}
	return nil
}

// EncodeRecords writes records as newline-delimited JSON.
func EncodeRecords(w io.Writer, records []entity.CorpusRecord) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("encode record %s: %w", records[i].ChunkID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	return nil
}

// ReadRecords loads every record of the corpus file at path.
// A missing file yields entity.ErrCorpusUnavailable.
func ReadRecords(path string) ([]entity.CorpusRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrCorpusUnavailable, path)
		}
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	return DecodeRecords(f)
}

// DecodeRecords parses newline-delimited JSON records. Blank lines are skipped.
func DecodeRecords(r io.Reader) ([]entity.CorpusRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	var records []entity.CorpusRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec entity.CorpusRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", entity.ErrCorpusMalformed, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	return records, nil
}
