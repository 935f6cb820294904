package handlers

import (
	"net"
	"net/http"
	"strings"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
)

// Account events, as they appear in logs, metrics and webhook deliveries.
const (
	EventRegister = "user.register"
	EventLogin    = "user.login"
	EventDelete   = "user.delete"
)

// auditor logs account events and queues them for webhook delivery.
type auditor struct {
	log      zerolog.Logger
	enqueuer ports.TaskEnqueuer
}

// record notes event for userID; a non-nil err marks it failed. Queue errors are logged
// and otherwise ignored.
func (a auditor) record(r *http.Request, event, userID string, err error) {
	ev := a.log.Info()
	e := ports.AuditEvent{Event: event, UserID: userID, IP: clientIP(r), Success: err == nil}
	if err != nil {
		ev = a.log.Warn()
		e.Err = err.Error()
	}
	ev.Str("event", event).
		Str("user_id", userID).
		Str("ip", e.IP).
		Str("request_id", chimid.GetReqID(r.Context())).
		Bool("success", e.Success).
		Str("error", e.Err).
		Msg("audit")

	middleware.RecordAuthAttempt(strings.TrimPrefix(event, "user."), e.Success)

	if a.enqueuer == nil {
		return
	}
	if qerr := a.enqueuer.EnqueueWebhook(r.Context(), event, e); qerr != nil {
		a.log.Error().Err(qerr).Str("event", event).Msg("audit webhook not queued")
	}
}

// clientIP strips the port from RemoteAddr, which chi's RealIP has already replaced with
// the forwarded address when a proxy set one.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
