package worker

// alert_worker.go
// Processes low-stock notification jobs from QueueAlerts: whenever a
// movement drives a product below its minimum, the configured alert
// address receives a heads-up email.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/f3rnandojr/newapp-coffe/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

type AlertWorker struct {
	mailer     *infra.Mailer
	alertEmail string
}

func NewAlertWorker(mailer *infra.Mailer, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, alertEmail: alertEmail}
}

func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if w.alertEmail == "" {
		log.Warn().Str("product", payload.Name).Msg("alert_worker: no alert email configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Estoque baixo: %s", payload.Name)
	body := fmt.Sprintf(
		"O produto %q (%s) está abaixo do estoque mínimo.\n\nEstoque atual: %d\nEstoque mínimo: %d\n",
		payload.Name, payload.Category, payload.Stock, payload.MinStock,
	)
	if err := w.mailer.Send(w.alertEmail, subject, body, ""); err != nil {
		log.Error().Err(err).Str("product", payload.Name).Msg("alert_worker: failed to send alert")
		return err
	}
	log.Info().Str("product", payload.Name).Int("stock", payload.Stock).Msg("alert_worker: low stock alert sent")
	return nil
}
