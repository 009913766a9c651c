package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/service"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

// HandleInvocations runs the detection pipeline for the image referenced by
// the JSON payload and writes the detections as a JSON array.
func HandleInvocations(s service.Service, w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
	startTime := time.Now()
	ctx := req.Context()

	requestID := requestIDFromHeader(req)
	w.Header().Set(constant.HeaderRequestIDKey, requestID.String())

	logger, _ := custom_logger.GetZapLogger(ctx)
	logger = logger.With(zap.String("request_id", requestID.String()))

	detectionReq, err := parseDetectionRequest(w, req)
	if err != nil {
		logger.Warn("Invalid invocation payload", zap.Error(err))
		makeErrorResponse(w, err)
		return
	}

	logger.Info("Invocation received",
		zap.String("bucket", detectionReq.Bucket),
		zap.String("key_prefix", detectionReq.KeyPrefix),
		zap.String("file_name", detectionReq.ObjectKey))

	results, err := s.Detect(ctx, requestID, detectionReq)
	if err != nil {
		makeErrorResponse(w, err)
		return
	}

	res, err := json.Marshal(results)
	if err != nil {
		makeErrorResponse(w, err)
		return
	}

	logger.Info("Invocation done",
		zap.Int("detections", len(results)),
		zap.Duration("elapsed", time.Since(startTime)))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res)
}

// HandleReady reports whether the model is ready to serve invocations.
func HandleReady(s service.Service, w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
	if !s.IsReady(req.Context()) {
		makeTextResponse(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	makeTextResponse(w, http.StatusOK, "ready")
}

// HandlePing is the liveness probe
func HandlePing(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
	makeTextResponse(w, http.StatusOK, "pong")
}

// HandleHome answers requests to the root path
func HandleHome(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
	makeTextResponse(w, http.StatusOK, "nothing here")
}

// HandleRobots disallows crawling
func HandleRobots(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
	makeTextResponse(w, http.StatusOK, "User-agent: * \n disallow /")
}

// requestIDFromHeader reuses a caller supplied request id when it is a valid
// UUID and generates a new one otherwise.
func requestIDFromHeader(req *http.Request) uuid.UUID {
	if id, err := uuid.FromString(req.Header.Get(constant.HeaderRequestIDKey)); err == nil && !id.IsNil() {
		return id
	}
	return uuid.Must(uuid.NewV4())
}

func makeErrorResponse(w http.ResponseWriter, err error) {
	makeTextResponse(w, runtime.HTTPStatusFromCode(service.Code(err)), err.Error())
}

func makeTextResponse(w http.ResponseWriter, st int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(st)
	_, _ = w.Write([]byte(body))
}
