package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Logging logs each MCP method with a request ID, duration, and outcome.
func Logging(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		start := time.Now()
		requestID := uuid.NewString()

		result, err := next(ctx, method, req)

		attrs := []any{
			"request_id", requestID,
			"method", method,
			"duration", time.Since(start).String(),
		}
		if err != nil {
			slog.Error("request failed", append(attrs, "error", err)...)
			return result, err
		}
		slog.Info("request", attrs...)
		return result, nil
	}
}

// Recovery turns a panicking handler into a method error instead of
// crashing the server.
func Recovery(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (result mcp.Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered",
					"method", method,
					"error", r,
					"stack", string(debug.Stack()),
				)
				result = nil
				err = fmt.Errorf("internal error handling %s", method)
			}
		}()
		return next(ctx, method, req)
	}
}
