package worker

// email_worker.go
// Processes generic email jobs from QueueEmail — collaborator access
// credentials today, anything with an optional attachment tomorrow.

import (
	"context"
	"encoding/json"

	"github.com/f3rnandojr/newapp-coffe/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailPayload is the job envelope sent to QueueEmail.
type EmailPayload struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Attachment string `json:"attachment,omitempty"` // optional file path
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return nil
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.Attachment); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.To).Msg("email_worker: email sent")
	return nil
}
