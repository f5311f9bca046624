// Package worker consumes profile commit messages and records them as audit
// entries.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgettracker/internal/amqp"
	"budgettracker/internal/storage"
)

// AuditRecorder is the slice of the storage layer the worker needs.
type AuditRecorder interface {
	RecordCommit(ctx context.Context, a storage.CommitAudit) error
}

// AuditWorker turns commit messages into durable audit rows.
type AuditWorker struct {
	recorder AuditRecorder
}

func NewAuditWorker(recorder AuditRecorder) *AuditWorker {
	return &AuditWorker{recorder: recorder}
}

// HandleCommitMessage processes a single profile committed message.
func (w *AuditWorker) HandleCommitMessage(ctx context.Context, msg *amqp.ProfileCommittedMessage) error {
	slog.InfoContext(ctx, "Processing commit message",
		"profile", msg.ProfileName,
		"currency", msg.Currency,
		"budget", msg.Budget)

	audit := storage.CommitAudit{
		ProfileName: msg.ProfileName,
		Currency:    msg.Currency,
		Income:      msg.Income,
		Savings:     msg.Savings,
		Budget:      msg.Budget,
		CommittedAt: msg.Timestamp,
	}
	if err := w.recorder.RecordCommit(ctx, audit); err != nil {
		return fmt.Errorf("record commit: %w", err)
	}

	return nil
}
