package shell

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/google/uuid"
)

// Record is one journal entry.
type Record struct {
	User    string `json:"user"`
	Command string `json:"command"`
}

// Sink receives one Record per executed command, in execution order.
type Sink interface {
	Append(rec Record) error
}

// FileJournal is a Sink that keeps every record in memory and rewrites the
// whole sequence to its file after each Append. The file is replaced
// atomically, so readers never see a partial document.
type FileJournal struct {
	path    string
	records []Record
	logger  logging.Logger
}

var _ Sink = (*FileJournal)(nil)

// NewFileJournal returns an empty journal writing to path. Nothing is written
// until the first Append, which overwrites whatever the file held before.
func NewFileJournal(path string) *FileJournal {
	return &FileJournal{
		path:   path,
		logger: logging.GetLogger("journal"),
	}
}

// Path returns the journal's destination.
func (j *FileJournal) Path() string {
	return j.path
}

// Records returns a copy of the accumulated records.
func (j *FileJournal) Records() []Record {
	records := make([]Record, len(j.records))
	copy(records, j.records)
	return records
}

// Append adds rec and rewrites the journal file. A record whose write fails
// stays in memory and is included in the next rewrite.
func (j *FileJournal) Append(rec Record) error {
	j.records = append(j.records, rec)
	return j.flush()
}

func (j *FileJournal) flush() error {
	data, err := encodeRecords(j.records)
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(j.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(j.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return errors.Join(fmt.Errorf("replace journal: %w", err), os.Remove(tmp))
	}

	j.logger.Trace().Str("path", j.path).Int("records", len(j.records)).Msg("Journal rewritten")
	return nil
}

// encodeRecords renders records as a JSON array indented by two spaces.
func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
