package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/voltgrid/oadr2-ven/oadr"
	"github.com/voltgrid/oadr2-ven/utils"
)

// DescriptionRenderer produces the oadrReportDescription XML fragment for a
// single description. The payload builder treats the fragment as opaque and
// splices it into the report block verbatim.
type DescriptionRenderer func(*oadr.ReportDescription) (string, error)

// PayloadBuilder serializes report models into signed-envelope OpenADR
// payloads. It holds no per-call state; one builder may be shared across
// goroutines.
type PayloadBuilder struct {
	renderDescription DescriptionRenderer
}

// NewPayloadBuilder creates a builder using the default report-description
// renderer.
func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{renderDescription: BuildReportDescription}
}

// NewPayloadBuilderWithDescriptions creates a builder with a custom
// report-description renderer.
func NewPayloadBuilderWithDescriptions(fn DescriptionRenderer) *PayloadBuilder {
	return &PayloadBuilder{renderDescription: fn}
}

// The envelope carries every namespace the update-report tree can reference.
// Prefixes are fixed; peers key signature and schema checks on them.
const (
	envelopeOpen = `<oadr:oadrPayload` +
		` xmlns:oadr="http://openadr.org/oadr-2.0b/2012/07"` +
		` xmlns:pyld="http://docs.oasis-open.org/ns/energyinterop/201110/payloads"` +
		` xmlns:ei="http://docs.oasis-open.org/ns/energyinterop/201110"` +
		` xmlns:emix="http://docs.oasis-open.org/ns/emix/2011/06"` +
		` xmlns:xcal="urn:ietf:params:xml:ns:icalendar-2.0"` +
		` xmlns:strm="urn:ietf:params:xml:ns:icalendar-2.0:stream">` +
		`<oadr:oadrSignedObject>`
	envelopeClose = `</oadr:oadrSignedObject></oadr:oadrPayload>`
)

// BuildUpdateReport serializes a ReportSet to a complete oadrUpdateReport
// document. On any error no output is returned.
func (pb *PayloadBuilder) BuildUpdateReport(set *oadr.ReportSet) ([]byte, error) {
	var b strings.Builder
	b.WriteString(envelopeOpen)
	b.WriteString(`<oadr:oadrUpdateReport ei:schemaVersion="2.0b">`)
	b.WriteString("<pyld:requestID>")
	b.WriteString(xmlEscape(set.RequestID))
	b.WriteString("</pyld:requestID>")
	for i := range set.Reports {
		if err := pb.writeReport(&b, &set.Reports[i]); err != nil {
			return nil, err
		}
	}
	if set.VenID != nil {
		b.WriteString("<ei:venID>")
		b.WriteString(xmlEscape(*set.VenID))
		b.WriteString("</ei:venID>")
	}
	b.WriteString("</oadr:oadrUpdateReport>")
	b.WriteString(envelopeClose)
	return []byte(b.String()), nil
}

func (pb *PayloadBuilder) writeReport(b *strings.Builder, r *oadr.Report) error {
	b.WriteString("<oadr:oadrReport>")
	if r.Dtstart != nil {
		if err := writeDtstart(b, *r.Dtstart, "oadrReport.dtstart"); err != nil {
			return err
		}
	}
	if r.Duration != nil {
		if err := writeDuration(b, *r.Duration, "oadrReport.duration"); err != nil {
			return err
		}
	}
	if len(r.Intervals) > 0 {
		b.WriteString("<strm:intervals>")
		for i := range r.Intervals {
			if err := pb.writeInterval(b, &r.Intervals[i]); err != nil {
				return err
			}
		}
		b.WriteString("</strm:intervals>")
	}
	if r.ReportID == "" {
		return fmt.Errorf("%w: oadrReport.eiReportID", ErrMissingRequiredField)
	}
	b.WriteString("<ei:eiReportID>")
	b.WriteString(xmlEscape(r.ReportID))
	b.WriteString("</ei:eiReportID>")
	for i := range r.ReportDescriptions {
		frag, err := pb.renderDescription(&r.ReportDescriptions[i])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDelegateRender, err)
		}
		b.WriteString(frag)
	}
	if r.ReportRequestID == "" {
		return fmt.Errorf("%w: oadrReport.reportRequestID", ErrMissingRequiredField)
	}
	b.WriteString("<ei:reportRequestID>")
	b.WriteString(xmlEscape(r.ReportRequestID))
	b.WriteString("</ei:reportRequestID>")
	if r.ReportSpecifierID == "" {
		return fmt.Errorf("%w: oadrReport.reportSpecifierID", ErrMissingRequiredField)
	}
	b.WriteString("<ei:reportSpecifierID>")
	b.WriteString(xmlEscape(r.ReportSpecifierID))
	b.WriteString("</ei:reportSpecifierID>")
	if reportNameSet(r.ReportName) {
		b.WriteString("<ei:reportName>")
		b.WriteString(xmlEscape(r.ReportName))
		b.WriteString("</ei:reportName>")
	}
	if r.CreatedDateTime.IsZero() {
		return fmt.Errorf("%w: oadrReport.createdDateTime", ErrMissingRequiredField)
	}
	created, err := utils.FormatDateTime(r.CreatedDateTime)
	if err != nil {
		return fmt.Errorf("%w: oadrReport.createdDateTime: %w", ErrFormat, err)
	}
	b.WriteString("<ei:createdDateTime>")
	b.WriteString(created)
	b.WriteString("</ei:createdDateTime>")
	b.WriteString("</oadr:oadrReport>")
	return nil
}

func (pb *PayloadBuilder) writeInterval(b *strings.Builder, iv *oadr.Interval) error {
	b.WriteString("<ei:interval>")
	if iv.Dtstart.IsZero() {
		return fmt.Errorf("%w: interval.dtstart", ErrMissingRequiredField)
	}
	if err := writeDtstart(b, iv.Dtstart, "interval.dtstart"); err != nil {
		return err
	}
	if iv.Duration != nil {
		if err := writeDuration(b, *iv.Duration, "interval.duration"); err != nil {
			return err
		}
	}
	if err := writePayload(b, &iv.Payload); err != nil {
		return err
	}
	b.WriteString("</ei:interval>")
	return nil
}

func writePayload(b *strings.Builder, p *oadr.ReportPayload) error {
	b.WriteString("<oadr:oadrReportPayload>")
	if p.RID == "" {
		return fmt.Errorf("%w: oadrReportPayload.rID", ErrMissingRequiredField)
	}
	b.WriteString("<ei:rID>")
	b.WriteString(xmlEscape(p.RID))
	b.WriteString("</ei:rID>")
	if p.Confidence != nil {
		n, err := formatNumber(*p.Confidence, "oadrReportPayload.confidence")
		if err != nil {
			return err
		}
		b.WriteString("<ei:confidence>")
		b.WriteString(n)
		b.WriteString("</ei:confidence>")
	}
	if p.Accuracy != nil {
		n, err := formatNumber(*p.Accuracy, "oadrReportPayload.accuracy")
		if err != nil {
			return err
		}
		b.WriteString("<ei:accuracy>")
		b.WriteString(n)
		b.WriteString("</ei:accuracy>")
	}
	if p.Value == nil {
		return fmt.Errorf("%w: oadrReportPayload.value", ErrMissingRequiredField)
	}
	val, err := formatNumber(*p.Value, "oadrReportPayload.value")
	if err != nil {
		return err
	}
	b.WriteString("<ei:payloadFloat><ei:value>")
	b.WriteString(val)
	b.WriteString("</ei:value></ei:payloadFloat>")
	if p.DataQuality != nil {
		b.WriteString("<oadr:oadrDataQuality>")
		b.WriteString(xmlEscape(*p.DataQuality))
		b.WriteString("</oadr:oadrDataQuality>")
	}
	b.WriteString("</oadr:oadrReportPayload>")
	return nil
}

func writeDtstart(b *strings.Builder, t time.Time, field string) error {
	dt, err := utils.FormatDateTime(t)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, field, err)
	}
	b.WriteString("<xcal:dtstart><xcal:date-time>")
	b.WriteString(dt)
	b.WriteString("</xcal:date-time></xcal:dtstart>")
	return nil
}

func writeDuration(b *strings.Builder, d time.Duration, field string) error {
	dur, err := utils.FormatDuration(d)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, field, err)
	}
	b.WriteString("<xcal:duration><xcal:duration>")
	b.WriteString(dur)
	b.WriteString("</xcal:duration></xcal:duration>")
	return nil
}

// reportNameSet decides whether reportName is emitted. It is deliberately an
// emptiness check, not a presence check: the protocol template treats an
// empty report name as absent. Every other optional field branches on
// presence; keep this exception contained here.
func reportNameSet(name string) bool {
	return name != ""
}

func formatNumber(v float64, field string) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %s: %v is not a finite number", ErrFormat, field, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
