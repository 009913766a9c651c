package datamodel

// DetectionRequest identifies exactly one remote image.
type DetectionRequest struct {
	// Bucket holding the image
	Bucket string `json:"s3_bucket"`

	// KeyPrefix is joined with ObjectKey by "/" to form the remote path
	KeyPrefix string `json:"key_prefix"`

	// ObjectKey is the image file name
	ObjectKey string `json:"file_name"`
}

// ObjectPath returns the remote path of the image inside the bucket.
func (r DetectionRequest) ObjectPath() string {
	return r.KeyPrefix + "/" + r.ObjectKey
}

// ImageTensor is a decoded image in HxWx3 row-major RGB layout.
type ImageTensor struct {
	Height int
	Width  int
	Pix    []uint8
}

// Shape returns the tensor shape without the batch dimension.
func (t *ImageTensor) Shape() []int64 {
	return []int64{int64(t.Height), int64(t.Width), 3}
}

// BoundingBox holds normalized coordinates relative to the image dimensions.
type BoundingBox struct {
	YMin float32
	XMin float32
	YMax float32
	XMax float32
}

// RawDetectionBatch is the model output for one image. The three slices are
// parallel and ordered by descending model confidence.
type RawDetectionBatch struct {
	Boxes       []BoundingBox
	ClassLabels [][]byte
	Scores      []float32
}

// Len returns the number of detections in the batch.
func (b *RawDetectionBatch) Len() int {
	return len(b.Scores)
}

// Detection is one element of a RawDetectionBatch with its label decoded.
type Detection struct {
	Box        BoundingBox
	ClassName  string
	Confidence float32
}

// DetectionResult is the externally visible shape of a detection. Numeric
// fields carry the string form of the underlying float32 values.
type DetectionResult struct {
	YMin       string `json:"ymin"`
	XMin       string `json:"xmin"`
	YMax       string `json:"ymax"`
	XMax       string `json:"xmax"`
	Class      string `json:"class"`
	Confidence string `json:"confidence"`
	MP3        string `json:"mp3"`
}
