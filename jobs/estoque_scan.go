package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestor-erp/gestor/internal/observability"
	"github.com/gestor-erp/gestor/internal/platform/db"
)

// EstoqueScanJob walks the product catalog looking for rows at or below the
// low-stock threshold and queues one alert email per affected owner.
type EstoqueScanJob struct {
	Pool       *pgxpool.Pool
	Logger     *slog.Logger
	Metrics    *observability.Metrics
	Client     *asynq.Client
	Threshold  int
	AlertEmail string
}

// NewEstoqueScanJob initialises the low-stock scan handler.
func NewEstoqueScanJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *observability.Metrics, client *asynq.Client, threshold int, alertEmail string) *EstoqueScanJob {
	return &EstoqueScanJob{
		Pool:       pool,
		Logger:     logger,
		Metrics:    metrics,
		Client:     client,
		Threshold:  threshold,
		AlertEmail: alertEmail,
	}
}

type lowStockRow struct {
	Nome    string
	Sku     string
	Estoque int
}

// Handle executes one scan run.
func (j *EstoqueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("estoque scan: handler not configured")
	}
	var payload EstoqueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	threshold := j.Threshold
	if payload.Threshold > 0 {
		threshold = payload.Threshold
	}

	var resultErr error
	defer func() {
		j.Metrics.ObserveJob(TaskTypeEstoqueScan, resultErr)
	}()

	logger := j.Logger.With(slog.Int("threshold", threshold))
	logger.Info("starting low-stock scan")

	// One consistent snapshot of the catalog per run.
	var low []lowStockRow
	err := db.WithTx(ctx, j.Pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT nome, sku, estoque_atual
			FROM produtos
			WHERE estoque_atual < $1
			ORDER BY estoque_atual ASC`,
			threshold,
		)
		if err != nil {
			return fmt.Errorf("estoque scan: query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var r lowStockRow
			if err := rows.Scan(&r.Nome, &r.Sku, &r.Estoque); err != nil {
				return err
			}
			low = append(low, r)
		}
		return rows.Err()
	})
	if err != nil {
		resultErr = err
		return resultErr
	}

	logger.Info("low-stock scan finished", slog.Int("products", len(low)))
	if len(low) == 0 || j.Client == nil || j.AlertEmail == "" {
		return nil
	}

	var b strings.Builder
	for _, r := range low {
		fmt.Fprintf(&b, "%s (%s): %d\n", r.Nome, r.Sku, r.Estoque)
	}
	task, err := NewSendEmailTask(SendEmailPayload{
		To:      j.AlertEmail,
		Subject: fmt.Sprintf("Estoque baixo: %d produtos", len(low)),
		Body:    b.String(),
	})
	if err != nil {
		resultErr = err
		return resultErr
	}
	if _, err := j.Client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		resultErr = fmt.Errorf("estoque scan: enqueue alert: %w", err)
		return resultErr
	}
	return nil
}
