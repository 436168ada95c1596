package main

import (
	"context"
	"log/slog"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// stdoutClient is the reference publish.Client and schedule.BatchNotifier
// for tsdiagd: in place of an editor's textDocument/publishDiagnostics
// notification, it logs each publish. A real editor transport would
// implement the same two interfaces over JSON-RPC instead.
type stdoutClient struct {
	logger *slog.Logger
}

func newStdoutClient(logger *slog.Logger) *stdoutClient {
	return &stdoutClient{logger: logger}
}

// PublishDiagnostics implements publish.Client.
func (c *stdoutClient) PublishDiagnostics(ctx context.Context, specifier string, diagnostics []protocol.Diagnostic, version *int32) {
	c.logger.InfoContext(ctx, "publishDiagnostics",
		slog.String("specifier", specifier),
		slog.Int("count", len(diagnostics)),
		slog.Any("version", version))
}

// NotifyBatch implements schedule.BatchNotifier.
func (c *stdoutClient) NotifyBatch(source diag.Source, batchIndex, messagesLen int) {
	c.logger.Info("batch complete",
		slog.String("source", source.Label()),
		slog.Int("batch", batchIndex),
		slog.Int("messages", messagesLen))
}
