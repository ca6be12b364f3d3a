package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestWithRequestIDGeneratesWhenEmpty(t *testing.T) {
	ctx, id := WithRequestID(context.Background(), "")
	if id == "" {
		t.Fatalf("expected generated request id")
	}
	if got := RequestID(ctx); got != id {
		t.Fatalf("RequestID = %q, want %q", got, id)
	}

	_, kept := WithRequestID(context.Background(), "abc-123")
	if kept != "abc-123" {
		t.Fatalf("incoming id not preserved: %q", kept)
	}
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLog(t)
	ctx, _ := WithRequestID(context.Background(), "req-1")

	err := errors.New("boom")
	Time(ctx, "flood.LookupZone")(&err)

	line := buf.String()
	if !strings.Contains(line, "req_id=req-1") || !strings.Contains(line, "op=flood.LookupZone") || !strings.Contains(line, "err=boom") {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestTimeLogsSuccess(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "score")(&err)

	if strings.Contains(buf.String(), "err=") {
		t.Fatalf("success should not log err: %q", buf.String())
	}
}
