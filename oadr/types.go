package oadr

import "time"

// ReportSet is the payload of one oadrUpdateReport message: a request ID,
// the reports being delivered, and optionally the sending VEN's ID.
//
// Optional fields are pointers so that "unset" stays distinguishable from a
// zero value; the renderer omits the element entirely when the pointer is nil.
type ReportSet struct {
	RequestID string
	Reports   []Report
	VenID     *string
}

// Report is one eiReport block inside an oadrUpdateReport.
type Report struct {
	Dtstart            *time.Time
	Duration           *time.Duration
	Intervals          []Interval
	ReportID           string
	ReportDescriptions []ReportDescription
	ReportRequestID    string
	ReportSpecifierID  string
	// ReportName is the one optional field the protocol template suppresses
	// on an empty value rather than on absence, so it stays a plain string.
	ReportName      string
	CreatedDateTime time.Time
}

// Interval is a time-bounded sub-period of a report carrying one measurement.
type Interval struct {
	Dtstart  time.Time
	Duration *time.Duration
	Payload  ReportPayload
}

// ReportPayload is the measurement inside an interval. Value is a pointer
// even though the schema requires it: a nil Value means the model was never
// filled in, while a pointer to 0 is a real zero reading.
type ReportPayload struct {
	RID         string
	Confidence  *float64
	Accuracy    *float64
	Value       *float64
	DataQuality *string
}

// SamplingRate describes how often a data source is read.
type SamplingRate struct {
	MinPeriod time.Duration
	MaxPeriod time.Duration
	OnChange  bool
}

// ReportDescription describes one r_id's data stream inside a report.
// The update-report renderer treats descriptions as opaque and hands them
// to a delegate; these fields are what the default delegate emits.
type ReportDescription struct {
	RID           string
	ResourceID    string
	ReportType    string
	ReadingType   string
	MarketContext string
	SamplingRate  *SamplingRate
}
