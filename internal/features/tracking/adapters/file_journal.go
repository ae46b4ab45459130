package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"delhivery-tracker/internal/features/tracking/domain"
)

// FileJournal appends tracking records to a flat text file.
// Existing content is never rewritten; every record goes after it.
type FileJournal struct {
	path string
}

// NewFileJournal creates a journal writing to path.
func NewFileJournal(path string) *FileJournal {
	return &FileJournal{path: path}
}

// Path returns the file the journal appends to.
func (j *FileJournal) Path() string {
	return j.path
}

// Append writes one record, creating the parent directory and the file on first use.
func (j *FileJournal) Append(entry domain.JournalEntry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open tracking log: %w", err)
	}

	if _, err := f.WriteString(FormatEntry(entry)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write tracking log: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close tracking log: %w", err)
	}
	return nil
}

// FormatEntry renders a record exactly as it is stored:
//
//	\n[<timestamp>] AWB: <awb>
//	<status line>
//	<slot line>            (only if set)
//	Last Tracking Entry:   (only if a last scan is set)
//	  Location: <location>
//	  Scan    : <scan>
//	  Remark  : <remark>
func FormatEntry(entry domain.JournalEntry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n[%s] AWB: %s\n", entry.Timestamp, entry.AWB)
	sb.WriteString(entry.StatusLine + "\n")

	if entry.SlotLine != nil {
		sb.WriteString(*entry.SlotLine + "\n")
	}

	if last := entry.LastScan; last != nil {
		sb.WriteString("Last Tracking Entry:\n")
		fmt.Fprintf(&sb, "  Location: %s\n", last.Location)
		fmt.Fprintf(&sb, "  Scan    : %s\n", last.Scan)
		fmt.Fprintf(&sb, "  Remark  : %s\n", last.Remark)
	}

	return sb.String()
}
