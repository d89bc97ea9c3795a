package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

var tracer = otel.Tracer("studyvault/aggregates")

// Write runs fn in one transaction, maps its error and records a span plus a
// log line for the operation.
func Write(ctx context.Context, runner TxRunner, log *logger.Logger, op string, fn func(dbc dbctx.Context) error) error {
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	start := time.Now()
	err := runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = string(domainagg.CodeOf(mapped))
		span.RecordError(mapped)
		span.SetStatus(codes.Error, status)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	if log != nil {
		if mapped != nil && domainagg.IsCode(mapped, domainagg.CodeInternal) {
			log.Error("aggregate write failed", "op", op, "status", status, "duration_ms", time.Since(start).Milliseconds(), "error", mapped)
		} else {
			log.Debug("aggregate write", "op", op, "status", status, "duration_ms", time.Since(start).Milliseconds())
		}
	}
	return mapped
}
