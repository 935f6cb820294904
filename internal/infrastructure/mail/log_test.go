package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))
	if err := s.Send(context.Background(), "alice@example.com", "Alice", "Welcome", "hi", "<p>hi</p>"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"to":"alice@example.com"`, `"subject":"Welcome"`, `"body":"hi"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %s", out, want)
		}
	}
}
