package triton

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/datamodel"
	"github.com/instill-ai/detection-backend/pkg/logger"
)

// ErrMalformedOutput is returned when the model output misses an expected
// tensor or the tensors disagree in length.
var ErrMalformedOutput = errors.New("malformed model output")

var detectionOutputs = []string{
	constant.OutputDetectionBoxes,
	constant.OutputDetectionClassEntities,
	constant.OutputDetectionScores,
}

// Detector runs a detection Model over decoded images.
type Detector struct {
	model     Model
	inputName string
	latency   metric.Float64Histogram
}

// NewDetector wraps model. inputName is the name of the model's image input.
func NewDetector(model Model, inputName string) *Detector {
	latency, _ := otel.Meter(constant.ServiceName).Float64Histogram(
		"detection.inference.duration",
		metric.WithDescription("Wall-clock duration of one model invocation"),
		metric.WithUnit("s"),
	)
	return &Detector{
		model:     model,
		inputName: inputName,
		latency:   latency,
	}
}

// Detect converts img to the model input, invokes the model once and returns
// the raw detections in model order.
func (d *Detector) Detect(ctx context.Context, img *datamodel.ImageTensor) (*datamodel.RawDetectionBatch, error) {
	logger, _ := logger.GetZapLogger(ctx)

	input := ImageToInput(d.inputName, img.Shape(), img.Pix)

	start := time.Now()
	outputs, err := d.model.Infer(ctx, input, detectionOutputs)
	elapsed := time.Since(start)
	if d.latency != nil {
		d.latency.Record(ctx, elapsed.Seconds())
	}
	if err != nil {
		return nil, err
	}

	batch, err := ToRawDetectionBatch(outputs)
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Found %d objects.", batch.Len()))
	logger.Info("Inference time", zap.Float64("seconds", elapsed.Seconds()))

	return batch, nil
}

// IsReady reports whether the model can serve requests.
func (d *Detector) IsReady(ctx context.Context) bool {
	return d.model.IsModelReady(ctx)
}

// ToRawDetectionBatch zips the three detection outputs. It fails instead of
// truncating when their lengths disagree.
func ToRawDetectionBatch(outputs map[string]*InferOutput) (*datamodel.RawDetectionBatch, error) {
	for _, name := range detectionOutputs {
		if outputs[name] == nil {
			return nil, fmt.Errorf("%w: missing output %s", ErrMalformedOutput, name)
		}
	}

	boxes := outputs[constant.OutputDetectionBoxes].FP32Contents
	labels := outputs[constant.OutputDetectionClassEntities].BytesContents
	scores := outputs[constant.OutputDetectionScores].FP32Contents

	if len(boxes)%4 != 0 {
		return nil, fmt.Errorf("%w: %s holds %d values, not a multiple of 4", ErrMalformedOutput, constant.OutputDetectionBoxes, len(boxes))
	}
	n := len(boxes) / 4
	if len(labels) != n || len(scores) != n {
		return nil, fmt.Errorf("%w: %d boxes, %d labels and %d scores", ErrMalformedOutput, n, len(labels), len(scores))
	}

	batch := &datamodel.RawDetectionBatch{
		Boxes:       make([]datamodel.BoundingBox, n),
		ClassLabels: labels,
		Scores:      scores,
	}
	for i := 0; i < n; i++ {
		b := boxes[i*4 : i*4+4]
		batch.Boxes[i] = datamodel.BoundingBox{YMin: b[0], XMin: b[1], YMax: b[2], XMax: b[3]}
	}

	return batch, nil
}
