package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/instill-ai/detection-backend/config"
	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/handler"
	"github.com/instill-ai/detection-backend/pkg/middleware"
	"github.com/instill-ai/detection-backend/pkg/minio"
	"github.com/instill-ai/detection-backend/pkg/service"
	"github.com/instill-ai/detection-backend/pkg/triton"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
	custom_otel "github.com/instill-ai/detection-backend/pkg/logger/otel"
)

func grpcHandlerFunc(grpcServer *grpc.Server, gwHandler http.Handler) http.Handler {
	return h2c.NewHandler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ProtoMajor == 2 && strings.Contains(r.Header.Get("Content-Type"), "application/grpc") {
				grpcServer.ServeHTTP(w, r)
			} else {
				gwHandler.ServeHTTP(w, r)
			}
		}),
		&http2.Server{})
}

func main() {
	// a missing .env file is not an error
	_ = godotenv.Load()

	if err := config.Init(config.ParseConfigFlag()); err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, _ := custom_logger.GetZapLogger(ctx)
	defer func() {
		// can't handle the error due to https://github.com/uber-go/zap/issues/880
		_ = logger.Sync()
	}()
	grpc_zap.ReplaceGrpcLoggerV2(logger)

	if config.Config.OTELCollector.Enable {
		mp, err := custom_otel.SetupMetrics(ctx, constant.ServiceName)
		if err != nil {
			logger.Fatal(fmt.Sprintf("failed to set up metrics: %v", err))
		}
		defer func() {
			_ = mp.Shutdown(context.Background())
		}()

		tp, err := custom_otel.SetupTracing(ctx, constant.ServiceName)
		if err != nil {
			logger.Fatal(fmt.Sprintf("failed to set up tracing: %v", err))
		}
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	// Create tls based credential.
	var creds credentials.TransportCredentials
	var err error
	if config.Config.Server.HTTPS.Cert != "" && config.Config.Server.HTTPS.Key != "" {
		creds, err = credentials.NewServerTLSFromFile(config.Config.Server.HTTPS.Cert, config.Config.Server.HTTPS.Key)
		if err != nil {
			logger.Fatal(fmt.Sprintf("failed to create credentials: %v", err))
		}
	}

	grpcServerOpts := []grpc.ServerOption{
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			grpc_zap.StreamServerInterceptor(logger, middleware.ZapOptions()...),
			grpc_recovery.StreamServerInterceptor(middleware.RecoveryInterceptorOpt()),
		)),
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			grpc_zap.UnaryServerInterceptor(logger, middleware.ZapOptions()...),
			grpc_recovery.UnaryServerInterceptor(middleware.RecoveryInterceptorOpt()),
		)),
	}
	if creds != nil {
		grpcServerOpts = append(grpcServerOpts, grpc.Creds(creds))
	}

	grpcS := grpc.NewServer(grpcServerOpts...)

	minioClient, err := minio.NewMinioClient(ctx, &config.Config.Minio)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to create minio client: %v", err))
	}

	tritonClient := triton.NewTriton(ctx, &config.Config.Triton)
	detector := triton.NewDetector(tritonClient, config.Config.Triton.InputName)

	s := service.NewService(minioClient, detector, config.Config.Detection, logger)

	healthS := health.NewServer()
	healthpb.RegisterHealthServer(grpcS, healthS)
	go watchReadiness(ctx, s, healthS, config.Config.Triton.ReadinessInterval)

	gwS := runtime.NewServeMux()

	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{"POST", "/invocations", middleware.AppendServiceMiddleware(s, handler.HandleInvocations)},
		{"GET", "/ready", middleware.AppendServiceMiddleware(s, handler.HandleReady)},
		{"GET", "/ping", handler.HandlePing},
		{"GET", "/robots.txt", handler.HandleRobots},
		{"GET", "/", handler.HandleHome},
	}
	for _, r := range routes {
		if err := gwS.HandlePath(r.method, r.pattern, r.handler); err != nil {
			logger.Fatal(err.Error())
		}
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%v", config.Config.Server.Port),
		Handler:      grpcHandlerFunc(grpcS, middleware.RequestLogMiddleware(gwS)),
		ReadTimeout:  config.Config.Server.ReadTimeout,
		WriteTimeout: config.Config.Server.WriteTimeout,
	}

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	quitSig := make(chan os.Signal, 1)
	errSig := make(chan error)
	if creds != nil {
		go func() {
			if err := httpServer.ListenAndServeTLS(config.Config.Server.HTTPS.Cert, config.Config.Server.HTTPS.Key); err != nil {
				errSig <- err
			}
		}()
	} else {
		go func() {
			if err := httpServer.ListenAndServe(); err != nil {
				errSig <- err
			}
		}()
	}
	logger.Info("detection-backend is running.", zap.Int("port", config.Config.Server.Port))

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be catch, so don't need add it
	signal.Notify(quitSig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errSig:
		logger.Error(fmt.Sprintf("Fatal error: %v\n", err))
	case <-quitSig:
		logger.Info("Shutting down server...")
		healthS.Shutdown()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown", zap.Error(err))
		}
		grpcS.GracefulStop()
	}
}

// watchReadiness mirrors model readiness into the gRPC health service until
// ctx is done.
func watchReadiness(ctx context.Context, s service.Service, healthS *health.Server, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		st := healthpb.HealthCheckResponse_NOT_SERVING
		if s.IsReady(ctx) {
			st = healthpb.HealthCheckResponse_SERVING
		}
		healthS.SetServingStatus("", st)
		healthS.SetServingStatus(constant.ServiceName, st)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
