// Package logsource loads the single text artifact a run processes.
package logsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tinytelemetry/qtrace/internal/model"
)

// StdinPath selects standard input instead of a file.
const StdinPath = "-"

// ErrUnreadable wraps every failure to open or read the input.
var ErrUnreadable = errors.New("log unreadable")

// Config holds tunable parameters for reading input.
type Config struct {
	MaxLineSize int
}

// ReadFile reads every line of the file at path, in order. The path "-"
// reads standard input.
func ReadFile(path string, conf ...Config) ([]string, error) {
	if path == StdinPath {
		return Read(os.Stdin, conf...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	lines, err := Read(f, conf...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// Read reads every line from r, in order, without trailing newlines.
func Read(r io.Reader, conf ...Config) ([]string, error) {
	maxLineSize := model.DefaultMaxLineSize
	if len(conf) > 0 && conf[0].MaxLineSize > 0 {
		maxLineSize = conf[0].MaxLineSize
	}

	scanner := bufio.NewScanner(r)
	// The scanner only reports ErrTooLong once its buffer is full, so the
	// initial capacity must not exceed the limit.
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineSize)), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d exceeds max size (%d bytes)", ErrUnreadable, len(lines)+1, maxLineSize)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return lines, nil
}
