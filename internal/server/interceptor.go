package server

import (
	"context"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/internal/common"
	"google.golang.org/grpc"
)

// RequestIDInterceptor stamps a request id into the context and logs one
// line per RPC with its outcome.
func RequestIDInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := uuid.NewString()
		ctx = common.WithRequestID(ctx, requestID)

		start := time.Now()
		resp, err := handler(ctx, req)

		if err != nil {
			logger.Warn("rpc failed",
				"method", info.FullMethod,
				"request_id", requestID,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		} else {
			logger.Info("rpc ok",
				"method", info.FullMethod,
				"request_id", requestID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		return resp, err
	}
}
