package report

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voltgrid/oadr2-ven/oadr"
)

// buildReportSet assembles one outgoing oadrUpdateReport model from the
// buffered samples. Sample order becomes interval order; the report dtstart
// is the earliest interval dtstart.
func (s *Service) buildReportSet(req *activeRequest, samples []sample) *oadr.ReportSet {
	granularity := req.granularity
	intervals := make([]oadr.Interval, 0, len(samples))
	var earliest time.Time
	for _, smp := range samples {
		v := smp.value
		iv := oadr.Interval{
			Dtstart:  smp.at,
			Duration: &granularity,
			Payload:  oadr.ReportPayload{RID: smp.rid, Value: &v},
		}
		if smp.quality != "" {
			q := smp.quality
			iv.Payload.DataQuality = &q
		}
		intervals = append(intervals, iv)
		if earliest.IsZero() || smp.at.Before(earliest) {
			earliest = smp.at
		}
	}

	rpt := oadr.Report{
		ReportID:          uuid.NewString(),
		ReportRequestID:   req.id,
		ReportSpecifierID: req.cap.SpecifierID,
		// Delivered reports use the plain report name even when the
		// capability was registered under its METADATA_ form.
		ReportName:      strings.TrimPrefix(req.cap.ReportName, "METADATA_"),
		CreatedDateTime: time.Now().UTC(),
		Intervals:       intervals,
	}
	if !earliest.IsZero() {
		rpt.Dtstart = &earliest
	}
	if req.cap.Duration > 0 {
		d := req.cap.Duration
		rpt.Duration = &d
	}

	set := &oadr.ReportSet{
		RequestID: uuid.NewString(),
		Reports:   []oadr.Report{rpt},
	}
	if s.venID != "" {
		id := s.venID
		set.VenID = &id
	}
	return set
}
