package port

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

// mockPort simulates the host serial port for development.
type mockPort struct {
	// Channel to send data to the reading process
	rxChan chan []byte
	// Context to handle closing the port
	ctx    context.Context
	cancel context.CancelFunc
}

// NewMockPort creates and starts a new mock serial port. It emits a
// telemetry-shaped line periodically, like a host computer would.
func NewMockPort() io.ReadWriteCloser {
	// A context is used to gracefully shut down the goroutine.
	ctx, cancel := context.WithCancel(context.Background())

	m := &mockPort{
		rxChan: make(chan []byte),
		ctx:    ctx,
		cancel: cancel,
	}

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		count := 0
		for {
			select {
			case <-ticker.C:
				msg := []byte(fmt.Sprintf("TEST,%d,mock host telemetry\n", count))
				m.rxChan <- msg
				count++
			case <-ctx.Done():
				// If the context is cancelled (by Close()), exit the goroutine.
				return
			}
		}
	}()

	return m
}

// Read blocks until a message is available on the rxChan or the context is done.
func (m *mockPort) Read(p []byte) (n int, err error) {
	select {
	case data := <-m.rxChan:
		n = copy(p, data)
		return n, nil
	case <-m.ctx.Done():
		return 0, io.EOF
	}
}

// Write simulates sending data. For this mock, we just log it.
func (m *mockPort) Write(p []byte) (n int, err error) {
	log.Printf("MOCK PORT WRITE: %s", string(p))
	return len(p), nil
}

// Close stops the mock port's internal goroutine.
func (m *mockPort) Close() error {
	log.Println("MOCK PORT: Closing")
	m.cancel()
	return nil
}
