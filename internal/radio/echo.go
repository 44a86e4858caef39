package radio

// Echo is a loopback driver. Every transmitted datagram is queued and
// handed back on the next receive poll. It replaces the radio leg of the
// bridge when no transceiver hardware is attached, so the serial side can
// be exercised end to end.
type Echo struct {
	queue [][]byte
}

var _ Driver = (*Echo)(nil)

func NewEcho() *Echo {
	return &Echo{}
}

func (e *Echo) Configure(Params) error { return nil }

func (e *Echo) EnterReceiveMode() error { return nil }

func (e *Echo) EnterStandby() error { return nil }

func (e *Echo) PollReceive() Poll {
	if len(e.queue) == 0 {
		return Poll{Kind: PollTimeout}
	}
	payload := e.queue[0]
	e.queue = e.queue[1:]
	return Poll{Kind: PollReceived, Payload: payload}
}

func (e *Echo) Transmit(data []byte) error {
	if len(data) > MaxPayload {
		return ErrOversize
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	e.queue = append(e.queue, buf)
	return nil
}
