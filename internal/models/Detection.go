package models

// HealthyClass is the sentinel class name the classifier returns when no
// disease is present on the leaf.
const HealthyClass = "Healthy"

// Detection is one classification outcome as produced by the remote model.
// Order within a result is the model output order; the first entry is the
// primary diagnosis in history summaries.
type Detection struct {
	ClassName   string  `json:"class_name"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
	Treatment   string  `json:"treatment,omitempty"`
}

// IsHealthy reports whether every detection carries the healthy sentinel.
// An empty list counts as healthy, matching the classifier contract of
// always returning at least one detection for a diseased plant.
func IsHealthy(detections []Detection) bool {
	for _, d := range detections {
		if d.ClassName != HealthyClass {
			return false
		}
	}
	return true
}

// PrimaryClass returns the class name of the first detection, or a fixed
// placeholder when the list is empty.
func PrimaryClass(detections []Detection) string {
	if len(detections) == 0 {
		return "Unknown Disease"
	}
	return detections[0].ClassName
}
