package port

import (
	"bufio"
	"io"
	"sync"
)

// LineReader pumps newline-delimited input from a port into a buffered
// channel, so a polling loop can pick up complete lines without blocking
// on the port read.
type LineReader struct {
	lines chan string

	mu  sync.Mutex
	err error
}

// NewLineReader starts scanning the reader for lines in the background.
func NewLineReader(p io.Reader) *LineReader {
	lr := &LineReader{
		lines: make(chan string, 64),
	}

	go func() {
		scanner := bufio.NewScanner(p)
		for scanner.Scan() {
			lr.lines <- scanner.Text()
		}
		lr.mu.Lock()
		lr.err = scanner.Err()
		lr.mu.Unlock()
		close(lr.lines)
	}()

	return lr
}

// Next returns the next complete line, if one is pending. It never blocks;
// when no line is available it reports false immediately.
func (lr *LineReader) Next() (string, bool) {
	select {
	case line, ok := <-lr.lines:
		if !ok {
			return "", false
		}
		return line, true
	default:
		return "", false
	}
}

// Err reports the scanner error that ended the pump, if any. EOF and a
// closed port end the pump with a nil error.
func (lr *LineReader) Err() error {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.err
}
