package middleware

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/service"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

type fn func(service.Service, http.ResponseWriter, *http.Request, map[string]string)

// AppendServiceMiddleware binds s to a custom gateway route handler.
func AppendServiceMiddleware(s service.Service, next fn) runtime.HandlerFunc {
	return runtime.HandlerFunc(func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		next(s, w, r, pathParams)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// probePaths are logged at debug level only
var probePaths = map[string]bool{
	"/ping":  true,
	"/ready": true,
}

// RequestLogMiddleware logs one line per HTTP request with its status and
// duration. An incoming trace context is extracted so that request spans join
// the caller's trace.
func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header)))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger, _ := custom_logger.GetZapLogger(r.Context())
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		}
		if id := rec.Header().Get(constant.HeaderRequestIDKey); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}

		if probePaths[r.URL.Path] {
			logger.Debug("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	})
}
