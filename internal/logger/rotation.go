package logger

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsae-data/datalogger/internal/fsutil"
	"github.com/fsae-data/datalogger/internal/monitoring"
)

const (
	// FilePattern is the fixed-width log file name format.
	FilePattern = "fsae-%04d.log"

	// MaxSequence bounds the rotation search to the pattern's digit width,
	// so the search can never silently overflow into five-digit names.
	MaxSequence = 10000
)

var (
	// ErrStorageUnavailable is returned when the selected log file cannot
	// be created. There is no retry or fallback; the session cannot start.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageExhausted is returned when every sequence number the file
	// pattern can express is already taken.
	ErrStorageExhausted = errors.New("log directory full: no free sequence number")
)

// LogFile is the session's log file. It is created once at startup and never
// reassigned for the rest of the session.
type LogFile struct {
	SequenceID uint32
	Path       string
	File       fsutil.File
}

// OpenNextLogFile selects the smallest unused sequence number in dir and
// creates its file. Existence is probed by opening for write: a successful
// open means the id is taken, so it is closed and the search advances; a
// failed open is read as "does not exist" and that id is claimed.
func OpenNextLogFile(fsys fsutil.FileSystem, dir string) (*LogFile, error) {
	for id := 0; id < MaxSequence; id++ {
		path := filepath.Join(dir, fmt.Sprintf(FilePattern, id))
		if f, err := fsys.OpenWrite(path); err == nil {
			f.Close()
			continue
		}
		f, err := fsys.Create(path)
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrStorageUnavailable, path, err)
		}
		monitoring.Logf("[logger] session log %s", path)
		return &LogFile{SequenceID: uint32(id), Path: path, File: f}, nil
	}
	return nil, fmt.Errorf("%w: %s holds %d logs", ErrStorageExhausted, dir, MaxSequence)
}
