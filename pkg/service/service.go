package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gofrs/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/config"
	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/datamodel"
	"github.com/instill-ai/detection-backend/pkg/minio"
	"github.com/instill-ai/detection-backend/pkg/utils"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

// Detector runs the object detection model over one decoded image.
type Detector interface {
	Detect(ctx context.Context, img *datamodel.ImageTensor) (*datamodel.RawDetectionBatch, error)
	IsReady(ctx context.Context) bool
}

// Service is the interface for the service layer
type Service interface {
	// Detect runs the detection pipeline for one request. The request id only
	// correlates log lines and spans; the scratch file gets its own fresh id.
	Detect(ctx context.Context, requestID uuid.UUID, req *datamodel.DetectionRequest) ([]datamodel.DetectionResult, error)
	// IsReady reports whether the model can serve requests.
	IsReady(ctx context.Context) bool
}

type service struct {
	fetcher  minio.Fetcher
	detector Detector
	cfg      config.DetectionConfig
	logger   *zap.Logger
	tracer   trace.Tracer
	results  metric.Int64Counter
}

// NewService returns a new service instance. cfg is copied and never
// modified afterwards.
func NewService(f minio.Fetcher, d Detector, cfg config.DetectionConfig, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	results, _ := otel.Meter(constant.ServiceName).Int64Counter(
		"detection.results",
		metric.WithDescription("Detections returned to clients"),
	)
	return &service{
		fetcher:  f,
		detector: d,
		cfg:      cfg,
		logger:   logger,
		tracer:   otel.Tracer(constant.ServiceName),
		results:  results,
	}
}

func (s *service) IsReady(ctx context.Context) bool {
	return s.detector.IsReady(ctx)
}

func (s *service) Detect(ctx context.Context, requestID uuid.UUID, req *datamodel.DetectionRequest) (results []datamodel.DetectionResult, err error) {
	ctx, span := s.tracer.Start(ctx, "Detect",
		trace.WithAttributes(
			attribute.String("request_id", requestID.String()),
			attribute.String("bucket", req.Bucket),
			attribute.String("object", req.ObjectPath()),
		))
	defer span.End()

	// log entries of this request are copied into its span
	logger := s.logger.
		With(zap.String("request_id", requestID.String())).
		WithOptions(zap.Hooks(custom_logger.TraceHook(ctx)))
	ctx = custom_logger.WithLogger(ctx, logger)

	p := &pipeline{logger: logger, span: span, stage: StageReceived}
	defer func() {
		if err != nil {
			p.fail(err)
			return
		}
		p.transition(StageResponded)
	}()

	if req.ObjectKey == "" {
		return nil, ErrMissingFileName
	}

	localPath, err := minio.ScratchPath(s.cfg.ScratchDir, req.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() {
		if err != nil {
			p.fail(err)
		} else {
			p.transition(StageCleaning)
		}
		utils.RemoveScratchFile(ctx, localPath)
	}()

	p.transition(StageFetching)
	if err := s.fetcher.FetchFile(ctx, req.Bucket, req.ObjectPath(), localPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	p.transition(StageLoading)
	img, err := utils.LoadImage(ctx, localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	p.transition(StageDetecting)
	batch, err := s.detector.Detect(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: detector returned no batch", ErrInference)
	}
	if len(batch.Boxes) != len(batch.Scores) || len(batch.ClassLabels) != len(batch.Scores) {
		return nil, fmt.Errorf("%w: %d boxes, %d labels and %d scores",
			ErrInference, len(batch.Boxes), len(batch.ClassLabels), len(batch.Scores))
	}

	p.transition(StageFiltering)
	results = BuildResults(ctx, batch, s.cfg.MaxBoxes, s.cfg.MinScore)
	if s.results != nil {
		s.results.Add(ctx, int64(len(results)))
	}
	span.SetAttributes(attribute.Int("detections", len(results)))

	return results, nil
}
