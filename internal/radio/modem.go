package radio

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/mahlburgc/lorabridge/internal/port"
)

const (
	// Programmed preamble length sent with the parameter command.
	modemPreamble = 4

	// How long to wait for a command acknowledge from the modem firmware.
	defaultCmdTimeout = 2 * time.Second

	// Polling granularity while waiting on an acknowledge.
	ackPollInterval = 5 * time.Millisecond
)

// ErrNoResponse indicates the modem did not acknowledge a command in time.
var ErrNoResponse = errors.New("no response from modem")

// ModemError is an +ERR acknowledge from the modem firmware.
type ModemError struct{ Code int }

func (e *ModemError) Error() string {
	return fmt.Sprintf("modem error %d", e.Code)
}

// Modem drives an RYLR896 class LoRa transceiver attached over a serial
// port, using its AT command set. Received datagrams arrive as unsolicited
// "+RCV=..." lines; commands are acknowledged with "+OK" or "+ERR=<code>".
type Modem struct {
	port       port.Port
	lines      *port.LineReader
	cmdTimeout time.Duration

	// Unsolicited receive lines picked up while waiting on a command
	// acknowledge, kept for the next poll.
	pending []string

	receiving bool
}

var _ Driver = (*Modem)(nil)

// NewModem wraps an already opened modem port.
func NewModem(p port.Port) *Modem {
	return &Modem{
		port:       p,
		lines:      port.NewLineReader(p),
		cmdTimeout: defaultCmdTimeout,
	}
}

// Configure programs band, rf parameters and the network id (the shared
// sync word selecting the private channel). Any refused command fails the
// whole configuration.
func (m *Modem) Configure(p Params) error {
	cmds := []string{
		fmt.Sprintf("AT+BAND=%d", p.Frequency),
		fmt.Sprintf("AT+PARAMETER=%d,%d,%d,%d",
			p.SpreadingFactor, p.Bandwidth, p.CodingRate, modemPreamble),
		fmt.Sprintf("AT+NETWORKID=%d", p.SyncWord),
	}
	for _, cmd := range cmds {
		if err := m.command(cmd); err != nil {
			return fmt.Errorf("configure %q: %w", cmd, err)
		}
	}
	return nil
}

// EnterReceiveMode puts the modem in transceiver mode. The modem receives
// continuously in that mode, so repeated calls are cheap no-ops.
func (m *Modem) EnterReceiveMode() error {
	if m.receiving {
		return nil
	}
	if err := m.command("AT+MODE=0"); err != nil {
		return err
	}
	m.receiving = true
	return nil
}

// EnterStandby leaves transceiver mode. The caller must allow a short
// settle delay before transmitting.
func (m *Modem) EnterStandby() error {
	if err := m.command("AT+MODE=1"); err != nil {
		return err
	}
	m.receiving = false
	return nil
}

// PollReceive drains at most one pending modem line. No pending line means
// timeout, which is not an error.
func (m *Modem) PollReceive() Poll {
	line, ok := m.nextLine()
	if !ok {
		return Poll{Kind: PollTimeout}
	}

	switch {
	case strings.HasPrefix(line, "+RCV="):
		payload, err := parseReceiveLine(line)
		if err != nil {
			return Poll{Kind: PollError, Code: errCodeMalformed, Err: err}
		}
		return Poll{Kind: PollReceived, Payload: payload}

	case strings.HasPrefix(line, "+ERR="):
		code := parseErrCode(line)
		return Poll{Kind: PollError, Code: code, Err: &ModemError{Code: code}}

	default:
		// Boot banners and other chatter, e.g. "+READY".
		log.Printf("modem: ignoring line %q", line)
		return Poll{Kind: PollTimeout}
	}
}

// Transmit broadcasts one datagram and blocks until the modem acknowledges
// the end of the physical transmission.
func (m *Modem) Transmit(data []byte) error {
	if len(data) > MaxPayload {
		return ErrOversize
	}
	return m.command(fmt.Sprintf("AT+SEND=0,%d,%s", len(data), data))
}

// command writes one AT command and waits for its acknowledge. Receive
// lines arriving in between are kept for the next poll.
func (m *Modem) command(cmd string) error {
	if _, err := m.port.Write([]byte(cmd + "\r\n")); err != nil {
		return err
	}

	deadline := time.Now().Add(m.cmdTimeout)
	for time.Now().Before(deadline) {
		line, ok := m.lines.Next()
		if !ok {
			time.Sleep(ackPollInterval)
			continue
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "+RCV="):
			m.pending = append(m.pending, line)
		case line == "+OK":
			return nil
		case strings.HasPrefix(line, "+ERR="):
			code := parseErrCode(line)
			return &ModemError{Code: code}
		default:
			log.Printf("modem: ignoring line %q", line)
		}
	}
	return ErrNoResponse
}

func (m *Modem) nextLine() (string, bool) {
	if len(m.pending) > 0 {
		line := m.pending[0]
		m.pending = m.pending[1:]
		return line, true
	}
	line, ok := m.lines.Next()
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// errCodeMalformed is reported when a receive line cannot be parsed. The
// modem firmware itself only uses positive codes.
const errCodeMalformed = -1

// parseReceiveLine extracts the payload from a line of the form
// "+RCV=<address>,<length>,<data>,<rssi>,<snr>". The data field is raw and
// may itself contain commas, so it is cut by the announced length rather
// than by separators.
func parseReceiveLine(line string) ([]byte, error) {
	rest := strings.TrimPrefix(line, "+RCV=")
	parts := strings.SplitN(rest, ",", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed receive line %q", line)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("malformed receive length in %q", line)
	}
	if len(parts[2]) < n {
		return nil, fmt.Errorf("receive line %q shorter than announced length %d", line, n)
	}
	return []byte(parts[2][:n]), nil
}

func parseErrCode(line string) int {
	code, err := strconv.Atoi(strings.TrimPrefix(line, "+ERR="))
	if err != nil {
		return errCodeMalformed
	}
	return code
}
