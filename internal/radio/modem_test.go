package radio

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeModemPort feeds pre-loaded modem responses to the line reader and
// records everything written to the modem.
type fakeModemPort struct {
	rx chan []byte

	mu     sync.Mutex
	writes []string
}

func newFakeModemPort() *fakeModemPort {
	return &fakeModemPort{rx: make(chan []byte, 32)}
}

func (p *fakeModemPort) Read(b []byte) (int, error) {
	data, ok := <-p.rx
	if !ok {
		return 0, io.EOF
	}
	return copy(b, data), nil
}

func (p *fakeModemPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	p.writes = append(p.writes, string(b))
	p.mu.Unlock()
	return len(b), nil
}

func (p *fakeModemPort) Close() error {
	close(p.rx)
	return nil
}

// reply queues modem output lines before the next command is issued.
func (p *fakeModemPort) reply(lines ...string) {
	for _, line := range lines {
		p.rx <- []byte(line + "\r\n")
	}
}

func (p *fakeModemPort) written() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.writes...)
}

func testParams() Params {
	return Params{
		Frequency:       868500000,
		SpreadingFactor: 7,
		Bandwidth:       7,
		CodingRate:      1,
		SyncWord:        18,
	}
}

func TestModemConfigure(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+OK", "+OK", "+OK")

	require.NoError(t, m.Configure(testParams()))
	require.Equal(t, []string{
		"AT+BAND=868500000\r\n",
		"AT+PARAMETER=7,7,1,4\r\n",
		"AT+NETWORKID=18\r\n",
	}, p.written())
}

func TestModemConfigureRefused(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+ERR=4")

	err := m.Configure(testParams())
	require.Error(t, err)

	var modemErr *ModemError
	require.ErrorAs(t, err, &modemErr)
	require.Equal(t, 4, modemErr.Code)
}

func TestModemConfigureNoResponse(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	m.cmdTimeout = 50 * time.Millisecond

	require.ErrorIs(t, m.Configure(testParams()), ErrNoResponse)
}

func TestModemTransmit(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+OK")

	require.NoError(t, m.Transmit([]byte("hello")))
	require.Equal(t, []string{"AT+SEND=0,5,hello\r\n"}, p.written())
}

func TestModemTransmitOversize(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)

	payload := make([]byte, MaxPayload+1)
	require.ErrorIs(t, m.Transmit(payload), ErrOversize)
	require.Empty(t, p.written())
}

func TestModemModeSwitching(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+OK", "+OK", "+OK")

	require.NoError(t, m.EnterReceiveMode())
	// Already receiving, must not issue another command.
	require.NoError(t, m.EnterReceiveMode())
	require.NoError(t, m.EnterStandby())
	require.NoError(t, m.EnterReceiveMode())

	require.Equal(t, []string{
		"AT+MODE=0\r\n",
		"AT+MODE=1\r\n",
		"AT+MODE=0\r\n",
	}, p.written())
}

func TestModemPollReceive(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	// Payload contains a comma; it must be cut by length, not separators.
	p.reply("+RCV=5,12,Hello, world,-42,11")

	var poll Poll
	require.Eventually(t, func() bool {
		poll = m.PollReceive()
		return poll.Kind != PollTimeout
	}, time.Second, time.Millisecond)

	require.Equal(t, PollReceived, poll.Kind)
	require.Equal(t, []byte("Hello, world"), poll.Payload)
}

func TestModemPollTimeoutIsImmediate(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)

	start := time.Now()
	poll := m.PollReceive()
	require.Equal(t, PollTimeout, poll.Kind)
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestModemPollError(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+ERR=2")

	var poll Poll
	require.Eventually(t, func() bool {
		poll = m.PollReceive()
		return poll.Kind != PollTimeout
	}, time.Second, time.Millisecond)

	require.Equal(t, PollError, poll.Kind)
	require.Equal(t, 2, poll.Code)

	var modemErr *ModemError
	require.ErrorAs(t, poll.Err, &modemErr)
	require.Equal(t, 2, modemErr.Code)
}

func TestModemKeepsDatagramArrivingDuringCommand(t *testing.T) {
	p := newFakeModemPort()
	m := NewModem(p)
	p.reply("+RCV=5,3,ack,-40,10", "+OK")

	require.NoError(t, m.Transmit([]byte("hi")))

	// The datagram seen while waiting for the acknowledge is pending now.
	poll := m.PollReceive()
	require.Equal(t, PollReceived, poll.Kind)
	require.Equal(t, []byte("ack"), poll.Payload)
}

func TestParseReceiveLine(t *testing.T) {
	testCases := []struct {
		name    string
		line    string
		expect  string
		wantErr bool
	}{
		{"simple", "+RCV=2,5,hello,-60,10", "hello", false},
		{"commas in payload", "+RCV=2,11,a,b,c,d,e,f,-60,10", "a,b,c,d,e,f", false},
		{"empty payload", "+RCV=2,0,,-60,10", "", false},
		{"missing fields", "+RCV=2", "", true},
		{"bad length", "+RCV=2,x,hello,-60,10", "", true},
		{"length beyond data", "+RCV=2,99,hi,-60,10", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := parseReceiveLine(tc.line)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, string(payload))
		})
	}
}
