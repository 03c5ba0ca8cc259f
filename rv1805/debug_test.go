package rv1805

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	want := "h -> \n00000000  69 28                                             |i(|\n\n <- h"
	got := fmt.Sprintf("h -> %s <- h", hexDump([]byte{0x69, 0x28}))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type recordLogger struct {
	lines []string
}

func (l *recordLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

type errHAL struct{ err error }

func (h errHAL) Read(p []byte) (int, error)  { return 0, h.err }
func (h errHAL) Write(p []byte) (int, error) { return 0, h.err }

func TestHALDebugPassesErrors(t *testing.T) {
	busErr := errors.New("bus: nack")
	l := &recordLogger{}
	h := &halDebug{"rtc", l, errHAL{busErr}}

	if _, err := h.Write([]byte{regID0}); err != busErr {
		t.Errorf("write: got %v want %v", err, busErr)
	}
	var buf [1]byte
	if _, err := h.Read(buf[:]); err != busErr {
		t.Errorf("read: got %v want %v", err, busErr)
	}

	log := strings.Join(l.lines, "\n")
	for _, want := range []string{"rtc >>  send", "rtc <<  send 0 bus: nack", "rtc >>  recv(1)"} {
		if !strings.Contains(log, want) {
			t.Errorf("log is missing %q:\n%s", want, log)
		}
	}
}

func TestGetLogger(t *testing.T) {
	if l := getLogger(IfaceConfig{}); l != Logger(nullLogger) {
		t.Errorf("got %T want null logger", l)
	}
	r := &recordLogger{}
	if l := getLogger(IfaceConfig{Debug: r}); l != Logger(r) {
		t.Errorf("got %T want configured logger", l)
	}
}
