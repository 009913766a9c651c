// Client for the KServe v2 HTTP protocol with the Triton binary tensor extension
// https://github.com/triton-inference-server/server/blob/main/docs/protocol/extension_binary_data.md

package triton

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/config"
	"github.com/instill-ai/detection-backend/pkg/logger"
)

// Model is an opaque inference capability: a batched image tensor in, named
// output tensors out.
type Model interface {
	Infer(ctx context.Context, input *InferInput, outputs []string) (map[string]*InferOutput, error)
	IsModelReady(ctx context.Context) bool
}

// Triton calls a model served by an inference server speaking the KServe v2
// HTTP protocol.
type Triton struct {
	client  *resty.Client
	model   string
	version string
}

// NewTriton returns an initialized inference server client. Requests are never
// retried.
func NewTriton(ctx context.Context, cfg *config.TritonConfig) *Triton {
	logger, _ := logger.GetZapLogger(ctx)
	baseURL := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)

	r := resty.New().
		SetLogger(logger.Sugar()).
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &Triton{
		client:  r,
		model:   cfg.Model,
		version: cfg.Version,
	}
}

func (t *Triton) modelPath() string {
	if t.version == "" {
		return fmt.Sprintf("/v2/models/%s", t.model)
	}
	return fmt.Sprintf("/v2/models/%s/versions/%s", t.model, t.version)
}

// IsModelReady calls the GET /v2/models/<model>/ready endpoint
func (t *Triton) IsModelReady(ctx context.Context) bool {
	resp, err := t.client.R().SetContext(ctx).Get(t.modelPath() + "/ready")
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// Infer calls the POST /v2/models/<model>/infer endpoint with the input as a
// binary tensor and requests every output in binary form.
func (t *Triton) Infer(ctx context.Context, input *InferInput, outputs []string) (map[string]*InferOutput, error) {
	logger, _ := logger.GetZapLogger(ctx)

	raw := SerializeFloat32Tensor(input.Data)
	req := inferRequest{
		Inputs: []inferInputTensor{{
			Name:     input.Name,
			Shape:    input.Shape,
			Datatype: DatatypeFP32,
			Parameters: inferParameters{
				BinaryDataSize: int64(len(raw)),
			},
		}},
	}
	for _, name := range outputs {
		req.Outputs = append(req.Outputs, inferRequestedOutput{
			Name:       name,
			Parameters: inferParameters{BinaryData: true},
		})
	}

	header, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, len(header)+len(raw))
	body = append(body, header...)
	body = append(body, raw...)

	start := time.Now()
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader(HeaderInferenceContentLength, strconv.Itoa(len(header))).
		SetBody(body).
		Post(t.modelPath() + "/infer")
	if err != nil {
		return nil, fmt.Errorf("couldn't connect with inference server: %w", err)
	}
	logger.Debug("Inference server responded",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode() != http.StatusOK {
		var e errorResponse
		if jsonErr := json.Unmarshal(resp.Body(), &e); jsonErr == nil && e.Error != "" {
			return nil, fmt.Errorf("inference server returned %d: %s", resp.StatusCode(), e.Error)
		}
		return nil, fmt.Errorf("inference server returned %d", resp.StatusCode())
	}

	return ParseInferResponse(resp.Body(), resp.Header().Get(HeaderInferenceContentLength))
}

// ParseInferResponse decodes an infer response body. headerLength is the value
// of the Inference-Header-Content-Length header, empty for pure JSON bodies.
func ParseInferResponse(body []byte, headerLength string) (map[string]*InferOutput, error) {
	jsonPart, binaryPart := body, []byte(nil)
	if headerLength != "" {
		n, err := strconv.Atoi(headerLength)
		if err != nil || n < 0 || n > len(body) {
			return nil, fmt.Errorf("invalid %s %q for a body of %d bytes", HeaderInferenceContentLength, headerLength, len(body))
		}
		jsonPart, binaryPart = body[:n], body[n:]
	}

	var resp inferResponse
	if err := json.Unmarshal(jsonPart, &resp); err != nil {
		return nil, fmt.Errorf("unable to decode inference response: %w", err)
	}

	outputs := make(map[string]*InferOutput, len(resp.Outputs))
	offset := int64(0)
	for _, o := range resp.Outputs {
		out := &InferOutput{
			Name:     o.Name,
			Datatype: o.Datatype,
			Shape:    o.Shape,
		}

		if size := o.Parameters.BinaryDataSize; size > 0 {
			if offset+size > int64(len(binaryPart)) {
				return nil, fmt.Errorf("output %s: binary data of %d bytes exceeds the response", o.Name, size)
			}
			if err := decodeBinaryOutput(out, binaryPart[offset:offset+size]); err != nil {
				return nil, err
			}
			offset += size
		} else if err := decodeJSONOutput(out, o.Data); err != nil {
			return nil, err
		}

		outputs[o.Name] = out
	}

	return outputs, nil
}

func decodeBinaryOutput(out *InferOutput, raw []byte) error {
	var err error
	switch out.Datatype {
	case DatatypeFP32:
		out.FP32Contents, err = DeserializeFloat32Tensor(raw)
	case DatatypeBytes:
		out.BytesContents, err = DeserializeBytesTensor(raw)
	default:
		err = fmt.Errorf("unsupported datatype %s", out.Datatype)
	}
	if err != nil {
		return fmt.Errorf("output %s: %w", out.Name, err)
	}
	return nil
}

func decodeJSONOutput(out *InferOutput, data []any) error {
	switch out.Datatype {
	case DatatypeFP32:
		out.FP32Contents = make([]float32, len(data))
		for i, v := range data {
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("output %s: element %d is not a number", out.Name, i)
			}
			out.FP32Contents[i] = float32(f)
		}
	case DatatypeBytes:
		out.BytesContents = make([][]byte, len(data))
		for i, v := range data {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("output %s: element %d is not a string", out.Name, i)
			}
			out.BytesContents[i] = []byte(s)
		}
	default:
		return fmt.Errorf("output %s: unsupported datatype %s", out.Name, out.Datatype)
	}
	return nil
}
