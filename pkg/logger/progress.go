package logger

import (
	"fmt"
	"os"
	"time"
)

// TimestampFormat renders as e.g. 2023-Sep-02-18:53:26.
const TimestampFormat = "2006-Jan-02-15:04:05"

// ProgressLogger appends "<timestamp> : <message>" lines to a log file. The
// file is opened and closed on every call so the last line on disk always
// names the last stage that completed.
type ProgressLogger struct {
	Path string
	Now  func() time.Time
}

func NewProgressLogger(path string) *ProgressLogger {
	return &ProgressLogger{Path: path, Now: time.Now}
}

func (p *ProgressLogger) Log(message string) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	f, err := os.OpenFile(p.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open progress log '%s': %w", p.Path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s : %s\n", now().Format(TimestampFormat), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write progress log '%s': %w", p.Path, err)
	}

	Infof("%s", message)
	return nil
}
