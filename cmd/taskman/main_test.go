package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/config"
	"github.com/danispp/Task-Management/internal/infrastructure/mail"
	"github.com/danispp/Task-Management/internal/infrastructure/webhook"
)

func TestRootCommand(t *testing.T) {
	want := map[string]bool{"serve": false, "migrate": false, "worker": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := newLogger(&config.Config{LogLevel: tt.level, Env: config.EnvProduction})
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWebhookEmitter(t *testing.T) {
	log := zerolog.Nop()
	if _, ok := newWebhookEmitter(&config.Config{}, log).(*webhook.LogEmitter); !ok {
		t.Error("no URL should log events instead of posting them")
	}

	var body []byte
	var signature string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get(webhook.HeaderSignature)
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{Webhook: config.WebhookConfig{URL: srv.URL, Secret: "s3cret"}}
	e := newWebhookEmitter(cfg, log)
	if err := e.Emit(context.Background(), ports.AuditEvent{Event: "user.login", UserID: "u1", Success: true}); err != nil {
		t.Fatal(err)
	}
	if want := "sha256=" + webhook.Sign([]byte("s3cret"), body); signature != want {
		t.Errorf("%s = %q, want HMAC of the body %q", webhook.HeaderSignature, signature, want)
	}
}

func TestNewMailSender(t *testing.T) {
	if _, ok := newMailSender(&config.Config{}, zerolog.Nop()).(*mail.LogSender); !ok {
		t.Error("no API key should select the log sender")
	}
}

func TestOpenStorageMemory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.StorageMemory}}
	s, err := openStorage(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.pool != nil || s.users == nil || s.projects == nil || s.tasks == nil {
		t.Errorf("storage = %+v", s)
	}
}
