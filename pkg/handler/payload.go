package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/instill-ai/detection-backend/pkg/datamodel"
	"github.com/instill-ai/detection-backend/pkg/service"
)

// maxPayloadBytes bounds the invocation body, which only carries three short
// strings.
const maxPayloadBytes = 1 << 20

// parseDetectionRequest reads the invocation payload. A missing file_name is
// reported before any other schema violation.
func parseDetectionRequest(w http.ResponseWriter, req *http.Request) (*datamodel.DetectionRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read payload: %s", service.ErrValidation, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %s", service.ErrValidation, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", service.ErrValidation)
	}

	if _, ok := payload["file_name"]; !ok {
		return nil, service.ErrMissingFileName
	}

	if err := datamodel.ValidateJSONSchema(datamodel.DetectionRequestJSONSchema, payload); err != nil {
		return nil, fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	var detectionReq datamodel.DetectionRequest
	if err := json.Unmarshal(body, &detectionReq); err != nil {
		return nil, fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	return &detectionReq, nil
}
