package constant

// ServiceName identifies the service in traces and metrics
const ServiceName = "detection-backend"

// HeaderRequestIDKey carries the per-request identifier in responses
const HeaderRequestIDKey = "X-Request-Id"

// Output tensor names of the detection model
const (
	OutputDetectionBoxes         = "detection_boxes"
	OutputDetectionClassEntities = "detection_class_entities"
	OutputDetectionScores        = "detection_scores"
)

// MP3Placeholder fills the mp3 field of every detection result
const MP3Placeholder = "_empty_"
