package middleware

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// RecoveryInterceptorOpt - panic handler
func RecoveryInterceptorOpt() grpc_recovery.Option {
	return grpc_recovery.WithRecoveryHandler(func(p any) (err error) {
		return status.Errorf(codes.Unknown, "panic triggered: %v", p)
	})
}

// ZapOptions are the grpc_zap options shared by the unary and stream
// interceptors.
func ZapOptions() []grpc_zap.Option {
	return []grpc_zap.Option{
		grpc_zap.WithDecider(ShouldLogCall),
	}
}

// ShouldLogCall drops successful health checks, which are polled by the
// orchestrator.
func ShouldLogCall(fullMethodName string, err error) bool {
	if err == nil && fullMethodName == healthCheckMethod {
		return false
	}
	// by default everything will be logged
	return true
}
