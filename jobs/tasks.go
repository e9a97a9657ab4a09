// Package jobs defines the asynq background tasks and the worker that runs
// them.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEstoqueScan is the task type for the periodic low-stock scan.
	TaskTypeEstoqueScan = "estoque:scan"
	// TaskTypeSendEmail is the task type for sending notification emails.
	TaskTypeSendEmail = "mail:send"
)

// EstoqueScanPayload parameterises one low-stock scan run.
type EstoqueScanPayload struct {
	// Threshold overrides the configured low-stock cutoff when positive.
	Threshold int `json:"threshold,omitempty"`
}

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewEstoqueScanTask constructs the low-stock scan task.
func NewEstoqueScanTask(payload EstoqueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEstoqueScan, data), nil
}

// NewSendEmailTask constructs an email notification task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// TODO: wire an SMTP sender; for now the notification lands in the log.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}
