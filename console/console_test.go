package console_test

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/creack/pty"

	"pkt.systems/asynclog"
	"pkt.systems/asynclog/console"
)

func plainSink(w io.Writer) *console.Sink {
	return console.New(w, console.Options{DisableTimestamp: true, NoColor: true})
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := plainSink(&buf)
	sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Target: "http", Message: "ready"})

	if got, want := buf.String(), "INF http ready\n"; got != want {
		t.Fatalf("unexpected line: got %q want %q", got, want)
	}
}

func TestLineFormatWithSource(t *testing.T) {
	var buf bytes.Buffer
	sink := plainSink(&buf)
	sink.Log(&asynclog.Record{
		Level:   asynclog.WarnLevel,
		Target:  "store",
		Message: "slow write",
		File:    "/src/app/store/write.go",
		Line:    88,
	})

	if got, want := buf.String(), "WRN store slow write (write.go:88)\n"; got != want {
		t.Fatalf("unexpected line: got %q want %q", got, want)
	}
}

func TestLineFormatWithModulePath(t *testing.T) {
	var buf bytes.Buffer
	sink := plainSink(&buf)
	sink.Log(&asynclog.Record{
		Level:      asynclog.ErrorLevel,
		Message:    "no target",
		ModulePath: "pkt.systems/app/store",
	})

	if got, want := buf.String(), "ERR no target (pkt.systems/app/store)\n"; got != want {
		t.Fatalf("unexpected line: got %q want %q", got, want)
	}
}

func TestLevelTags(t *testing.T) {
	cases := []struct {
		level asynclog.Level
		tag   string
	}{
		{asynclog.TraceLevel, "TRC"},
		{asynclog.DebugLevel, "DBG"},
		{asynclog.InfoLevel, "INF"},
		{asynclog.WarnLevel, "WRN"},
		{asynclog.ErrorLevel, "ERR"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		plainSink(&buf).Log(&asynclog.Record{Level: tc.level, Message: "m"})
		if !strings.HasPrefix(buf.String(), tc.tag+" ") {
			t.Fatalf("level %v: got %q, want prefix %q", tc.level, buf.String(), tc.tag)
		}
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	sink := console.New(&buf, console.Options{NoColor: true})
	sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Message: "stamped"})

	// Default DTG layout: six digits then the level tag.
	if ok, _ := regexp.MatchString(`^\d{6} INF stamped\n$`, buf.String()); !ok {
		t.Fatalf("unexpected timestamped line: %q", buf.String())
	}
}

func TestMinLevelGate(t *testing.T) {
	sink := console.New(io.Discard, console.Options{MinLevel: asynclog.FilterWarn})
	if sink.Enabled(asynclog.InfoLevel, "t") {
		t.Fatalf("info should not pass a warn gate")
	}
	if !sink.Enabled(asynclog.ErrorLevel, "t") {
		t.Fatalf("error should pass a warn gate")
	}
}

func TestForceColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	sink := console.New(&buf, console.Options{DisableTimestamp: true, ForceColor: true})
	sink.Log(&asynclog.Record{Level: asynclog.ErrorLevel, Message: "colored"})
	if !hasANSI(buf.String()) {
		t.Fatalf("expected ANSI sequences with ForceColor, got %q", buf.String())
	}
}

func TestNoColorEnvWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	sink := console.New(&buf, console.Options{DisableTimestamp: true, ForceColor: true})
	sink.Log(&asynclog.Record{Level: asynclog.ErrorLevel, Message: "plain"})
	if hasANSI(buf.String()) {
		t.Fatalf("NO_COLOR must override ForceColor, got %q", buf.String())
	}
}

func TestNoColorOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	sink := console.New(&buf, console.Options{DisableTimestamp: true})
	sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Message: "msg"})
	if hasANSI(buf.String()) {
		t.Fatalf("expected no colors on non-terminal writer, got %q", buf.String())
	}
}

func TestColorAutoDetectWithTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	out := captureTTYOutput(t, func(w io.Writer) {
		sink := console.New(w, console.Options{DisableTimestamp: true})
		sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Message: "color"})
	})
	if !hasANSI(out) {
		t.Fatalf("expected ANSI sequences when terminal detected, got %q", out)
	}
}

func TestNoColorOptionOnTTY(t *testing.T) {
	out := captureTTYOutput(t, func(w io.Writer) {
		sink := console.New(w, console.Options{DisableTimestamp: true, NoColor: true})
		sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Message: "plain"})
	})
	if hasANSI(out) {
		t.Fatalf("unexpected ANSI sequences when NoColor set: %q", out)
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestOnWriteErrorObservesLoss(t *testing.T) {
	wantErr := errors.New("disk gone")
	var got error
	sink := console.New(failingWriter{err: wantErr}, console.Options{
		DisableTimestamp: true,
		NoColor:          true,
		OnWriteError:     func(err error) { got = err },
	})
	sink.Log(&asynclog.Record{Level: asynclog.InfoLevel, Message: "lost"})
	if !errors.Is(got, wantErr) {
		t.Fatalf("OnWriteError observed %v, want %v", got, wantErr)
	}
}

func TestEndToEndThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := asynclog.New(plainSink(&buf), asynclog.Options{})
	logger.Info("t", "42")
	logger.Warn("t", "hello")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if got, want := buf.String(), "INF t 42\nWRN t hello\n"; got != want {
		t.Fatalf("unexpected output: got %q want %q", got, want)
	}
}

func captureTTYOutput(t *testing.T, fn func(io.Writer)) string {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, master)
		close(done)
	}()
	fn(slave)
	_ = slave.Close()
	<-done
	_ = master.Close()
	return buf.String()
}

func hasANSI(s string) bool {
	return strings.Contains(s, "\x1b[")
}
