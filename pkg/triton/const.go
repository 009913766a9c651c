package triton

// Tensor datatypes of the KServe v2 protocol used by the detection model
const (
	DatatypeFP32  = "FP32"
	DatatypeBytes = "BYTES"
)

// HeaderInferenceContentLength carries the JSON header size of a request or
// response using the binary tensor extension.
const HeaderInferenceContentLength = "Inference-Header-Content-Length"

// InferInput is a FP32 tensor sent to the model.
type InferInput struct {
	Name  string
	Shape []int64
	Data  []float32
}

// InferOutput is a named tensor returned by the model. Only the contents
// matching Datatype are populated.
type InferOutput struct {
	Name          string
	Datatype      string
	Shape         []int64
	FP32Contents  []float32
	BytesContents [][]byte
}

type inferParameters struct {
	BinaryData     bool  `json:"binary_data,omitempty"`
	BinaryDataSize int64 `json:"binary_data_size,omitempty"`
}

type inferInputTensor struct {
	Name       string          `json:"name"`
	Shape      []int64         `json:"shape"`
	Datatype   string          `json:"datatype"`
	Parameters inferParameters `json:"parameters"`
}

type inferRequestedOutput struct {
	Name       string          `json:"name"`
	Parameters inferParameters `json:"parameters"`
}

type inferRequest struct {
	Inputs  []inferInputTensor     `json:"inputs"`
	Outputs []inferRequestedOutput `json:"outputs"`
}

type inferOutputTensor struct {
	Name       string          `json:"name"`
	Shape      []int64         `json:"shape"`
	Datatype   string          `json:"datatype"`
	Parameters inferParameters `json:"parameters"`
	Data       []any           `json:"data"`
}

type inferResponse struct {
	ModelName    string              `json:"model_name"`
	ModelVersion string              `json:"model_version"`
	Outputs      []inferOutputTensor `json:"outputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}
