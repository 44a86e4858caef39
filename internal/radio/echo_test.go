package radio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEchoLoopsTransmitsBack(t *testing.T) {
	e := NewEcho()
	require.NoError(t, e.Configure(Params{}))
	require.NoError(t, e.EnterReceiveMode())

	require.NoError(t, e.Transmit([]byte("first")))
	require.NoError(t, e.Transmit([]byte("second")))

	poll := e.PollReceive()
	require.Equal(t, PollReceived, poll.Kind)
	require.Equal(t, []byte("first"), poll.Payload)

	poll = e.PollReceive()
	require.Equal(t, PollReceived, poll.Kind)
	require.Equal(t, []byte("second"), poll.Payload)

	poll = e.PollReceive()
	require.Equal(t, PollTimeout, poll.Kind)
}

func TestEchoCopiesPayload(t *testing.T) {
	e := NewEcho()
	buf := []byte("payload")
	require.NoError(t, e.Transmit(buf))
	buf[0] = 'X'

	poll := e.PollReceive()
	require.Equal(t, []byte("payload"), poll.Payload)
}

func TestEchoRejectsOversize(t *testing.T) {
	e := NewEcho()
	require.ErrorIs(t, e.Transmit(make([]byte, MaxPayload+1)), ErrOversize)
	require.Equal(t, PollTimeout, e.PollReceive().Kind)
}
