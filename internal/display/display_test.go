package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mahlburgc/lorabridge/events"
	"github.com/stretchr/testify/require"
)

// runeWidth measures every character as one unit, like a fixed width font.
func runeWidth(s string) int {
	return len([]rune(s))
}

// wideRuneWidth measures every character as four units.
func wideRuneWidth(s string) int {
	return 4 * len([]rune(s))
}

func newTestUpdater(width int, measure MeasureFunc) *Updater {
	u := New(Surface{Width: width, Measure: measure})
	u.now = func() time.Time { return time.Unix(2000, 0) }
	return u
}

func TestWrapIsGreedyAndCharacterGranular(t *testing.T) {
	testCases := []struct {
		name    string
		width   int
		measure MeasureFunc
		in      string
		expect  []string
	}{
		{"fits on one line", 10, runeWidth, "hello", []string{"hello"}},
		{"exact fit", 5, runeWidth, "hello", []string{"hello"}},
		{"breaks on overflow", 5, runeWidth, "abcdefghijklmno", []string{"abcde", "fghij", "klmno"}},
		{"uneven tail", 4, runeWidth, "abcdefghij", []string{"abcd", "efgh", "ij"}},
		{"no hyphenation mid word", 6, runeWidth, "aa bbbbbb", []string{"aa bbb", "bbb"}},
		{"wide glyphs", 10, wideRuneWidth, "abcde", []string{"ab", "cd", "e"}},
		{"glyph wider than surface", 3, wideRuneWidth, "abc", []string{"a", "b", "c"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := newTestUpdater(tc.width, tc.measure)
			got := u.wrap(tc.in)
			require.Equal(t, tc.expect, got)
			// Wrapping must never drop or add characters.
			require.Equal(t, tc.in, strings.Join(got, ""))
		})
	}
}

func TestApplyOverwritesRendering(t *testing.T) {
	u := newTestUpdater(20, runeWidth)

	u.Apply(events.Event{Kind: events.TxOk, Text: "hello"})
	require.Equal(t, []string{"TX OK", "hello"}, u.Lines())

	u.Apply(events.Event{Kind: events.RxOk, Text: "world"})
	require.Equal(t, []string{"RX OK", "world"}, u.Lines())

	st := u.Last()
	require.Equal(t, events.RxOk, st.Event.Kind)
	require.Equal(t, time.Unix(2000, 0), st.At)
}

func TestIdleRendersListening(t *testing.T) {
	u := newTestUpdater(20, runeWidth)
	u.Apply(events.Event{Kind: events.Idle})
	require.Equal(t, []string{"Listening..."}, u.Lines())
}

func TestReceiveErrorRendersCode(t *testing.T) {
	u := newTestUpdater(20, runeWidth)
	u.Apply(events.Event{Kind: events.RxErr, Code: 3, Err: errors.New("crc mismatch")})
	require.Equal(t, []string{"RX ERR 3", "crc mismatch"}, u.Lines())
}

func TestFaultRendersError(t *testing.T) {
	u := newTestUpdater(20, runeWidth)
	u.Apply(events.Event{Kind: events.Fault, Err: errors.New("bad wiring")})
	require.Equal(t, []string{"RADIO FAULT", "bad wiring"}, u.Lines())
}

func TestLongPayloadSoftWraps(t *testing.T) {
	u := newTestUpdater(8, runeWidth)
	u.Apply(events.Event{Kind: events.TxOk, Text: "TEST,12345,Hello World"})

	lines := u.Lines()
	require.Equal(t, "TX OK", lines[0])
	require.Equal(t, "TEST,12345,Hello World", strings.Join(lines[1:], ""))
	for _, line := range lines[1:] {
		require.LessOrEqual(t, runeWidth(line), 8)
	}
}

func TestResizeRewrapsLastEvent(t *testing.T) {
	u := newTestUpdater(20, runeWidth)
	u.Apply(events.Event{Kind: events.RxOk, Text: "abcdefghij"})
	require.Equal(t, []string{"RX OK", "abcdefghij"}, u.Lines())

	u.Resize(4)
	require.Equal(t, []string{"RX OK", "abcd", "efgh", "ij"}, u.Lines())
}

func TestResizeBeforeFirstEventKeepsBootScreen(t *testing.T) {
	u := newTestUpdater(20, runeWidth)
	u.Resize(10)
	require.Equal(t, []string{"Starting..."}, u.Lines())
}
