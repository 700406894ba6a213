package models

// TextSegment is one highlighted (or plain) span of a side-by-side report
// pane. Percentage is the rounded match percentage in [0, 100]; it is only
// meaningful when IsMatch is true. Segments are derived client-side and never
// persisted to the backend.
type TextSegment struct {
	Text       string `json:"text"`
	IsMatch    bool   `json:"is_match"`
	Percentage int    `json:"percentage"`
}

// ReportState tracks the lifecycle of one report resolution.
type ReportState string

const (
	ReportStateInit     ReportState = "init"
	ReportStateLoading  ReportState = "loading"
	ReportStateRendered ReportState = "rendered"
	ReportStateError    ReportState = "error"
)
