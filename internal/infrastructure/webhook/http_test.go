package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

func TestEmitter_Emit(t *testing.T) {
	var body []byte
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := NewEmitter(srv.URL, WithSecret("s3cret"))
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	event := ports.AuditEvent{Event: "user.register", UserID: "u1", IP: "10.0.0.1", Success: true}
	if err := e.Emit(context.Background(), event); err != nil {
		t.Fatal(err)
	}

	var got delivery
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.AuditEvent != event || !got.DeliveredAt.Equal(e.now()) {
		t.Errorf("received %+v", got)
	}
	if header.Get(HeaderEvent) != "user.register" {
		t.Errorf("%s = %q", HeaderEvent, header.Get(HeaderEvent))
	}
	if want := "sha256=" + Sign([]byte("s3cret"), body); header.Get(HeaderSignature) != want {
		t.Errorf("%s = %q, want %q", HeaderSignature, header.Get(HeaderSignature), want)
	}
	if header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", header.Get("Content-Type"))
	}
}

func TestEmitter_NoSecretNoSignature(t *testing.T) {
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
	}))
	defer srv.Close()

	if err := NewEmitter(srv.URL).Emit(context.Background(), ports.AuditEvent{Event: "user.login"}); err != nil {
		t.Fatal(err)
	}
	if v := header.Get(HeaderSignature); v != "" {
		t.Errorf("unexpected signature %q", v)
	}
}

func TestEmitter_StatusError(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadGateway, true},
		{http.StatusTooManyRequests, true},
		{http.StatusRequestTimeout, true},
		{http.StatusBadRequest, false},
		{http.StatusGone, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewEmitter(srv.URL).Emit(context.Background(), ports.AuditEvent{Event: "user.login"})
			var se *StatusError
			if !errors.As(err, &se) || se.Status != tt.status {
				t.Fatalf("err = %v, want StatusError %d", err, tt.status)
			}
			if se.Retryable() != tt.retryable {
				t.Errorf("Retryable() = %v, want %v", se.Retryable(), tt.retryable)
			}
		})
	}
}

func TestLogEmitter(t *testing.T) {
	var buf bytes.Buffer
	err := NewLogEmitter(zerolog.New(&buf)).Emit(context.Background(), ports.AuditEvent{Event: "user.delete", UserID: "u1", Success: true})
	if err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, `"event":"user.delete"`) || !strings.Contains(out, `"user_id":"u1"`) {
		t.Errorf("log = %s", out)
	}
}
