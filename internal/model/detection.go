package model

import "image"

// Detection is one text fragment reported by the OCR engine.
// Only Text is consumed by plate selection.
type Detection struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence,omitempty"`
	Box        image.Rectangle `json:"-"`
}

// DetectionSet keeps detections in the order the OCR engine emitted them.
// A nil *DetectionSet means no frame was available at all.
type DetectionSet struct {
	Detections []Detection `json:"detections"`
}

func NewDetectionSet(texts ...string) *DetectionSet {
	set := &DetectionSet{Detections: make([]Detection, 0, len(texts))}
	for _, text := range texts {
		set.Detections = append(set.Detections, Detection{Text: text})
	}
	return set
}

func (s *DetectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Detections)
}
