package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// protocolLogging records every inbound MCP method at debug level. Tool
// calls get a richer entry from logToolCall.
func protocolLogging(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}
			began := time.Now()
			result, err := next(ctx, method, req)
			if err != nil {
				logger.Debug("mcp method failed", "method", method, "elapsed", time.Since(began), "error", err)
			} else {
				logger.Debug("mcp method", "method", method, "elapsed", time.Since(began))
			}
			return result, err
		}
	}
}

// logToolCall reports what a tool did to the timer. Commands log at info with
// whether they were applied and the phase they left behind; queries log at
// debug.
func logToolCall(ctx context.Context, logger *slog.Logger, tool string, elapsed time.Duration, out any, err error) {
	if logger == nil {
		return
	}
	attrs := []any{"tool", tool, "elapsed", elapsed}

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			logger.Info("tool rejected", append(attrs, "code", apiErr.Code, "message", apiErr.Message)...)
			return
		}
		logger.Error("tool failed", append(attrs, "error", err)...)
		return
	}

	switch v := out.(type) {
	case CommandResponse:
		attrs = append(attrs, "applied", v.Applied, "phase", v.State.Phase, "status", v.State.Status)
		if v.State.AwaitingConfirmation {
			attrs = append(attrs, "awaiting_confirmation", true)
		}
		logger.Info("command", attrs...)
	case StateResponse:
		logger.Debug("query", append(attrs, "phase", v.Phase, "remaining", v.Remaining)...)
	default:
		logger.Log(ctx, slog.LevelDebug, "query", attrs...)
	}
}
