package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/datamodel"
	"github.com/instill-ai/detection-backend/pkg/utils"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

// BuildResults keeps the detections among the first maxBoxes of the batch
// whose score, widened to float64, is at least minScore. Batch order is
// preserved and a low score does not stop the scan. Detections whose label is
// not ASCII are skipped. The batch must hold as many boxes and labels as
// scores.
func BuildResults(ctx context.Context, batch *datamodel.RawDetectionBatch, maxBoxes int, minScore float64) []datamodel.DetectionResult {
	logger, _ := custom_logger.GetZapLogger(ctx)

	results := []datamodel.DetectionResult{}
	if batch == nil {
		return results
	}

	n := min(batch.Len(), maxBoxes)
	for i := 0; i < n; i++ {
		if float64(batch.Scores[i]) < minScore {
			continue
		}

		d, err := toDetection(batch, i)
		if err != nil {
			logger.Warn("Skipping detection", zap.Int("index", i), zap.Error(err))
			continue
		}

		logger.Info(fmt.Sprintf("Found a %s with %.0f%% confidence", d.ClassName, d.Confidence*100),
			zap.String("class", d.ClassName),
			zap.Float32("confidence", d.Confidence))

		results = append(results, toResult(d))
	}

	return results
}

func toDetection(batch *datamodel.RawDetectionBatch, i int) (datamodel.Detection, error) {
	label := batch.ClassLabels[i]
	if !utils.IsASCII(label) {
		return datamodel.Detection{}, fmt.Errorf("%w: class label %q is not ASCII", ErrDecode, label)
	}
	return datamodel.Detection{
		Box:        batch.Boxes[i],
		ClassName:  string(label),
		Confidence: batch.Scores[i],
	}, nil
}

func toResult(d datamodel.Detection) datamodel.DetectionResult {
	return datamodel.DetectionResult{
		YMin:       utils.FormatFloat32(d.Box.YMin),
		XMin:       utils.FormatFloat32(d.Box.XMin),
		YMax:       utils.FormatFloat32(d.Box.YMax),
		XMax:       utils.FormatFloat32(d.Box.XMax),
		Class:      d.ClassName,
		Confidence: utils.FormatFloat32(d.Confidence),
		MP3:        constant.MP3Placeholder,
	}
}
