package render

import (
	"fmt"
	"strings"

	"github.com/voltgrid/oadr2-ven/oadr"
	"github.com/voltgrid/oadr2-ven/utils"
)

// BuildReportDescription is the default DescriptionRenderer. It emits one
// oadrReportDescription block; rID is the only field it insists on, the
// rest are emitted when populated.
func BuildReportDescription(d *oadr.ReportDescription) (string, error) {
	if d.RID == "" {
		return "", fmt.Errorf("%w: oadrReportDescription.rID", ErrMissingRequiredField)
	}
	var b strings.Builder
	b.WriteString("<oadr:oadrReportDescription>")
	b.WriteString("<ei:rID>")
	b.WriteString(xmlEscape(d.RID))
	b.WriteString("</ei:rID>")
	if d.ResourceID != "" {
		b.WriteString("<ei:reportDataSource><ei:resourceID>")
		b.WriteString(xmlEscape(d.ResourceID))
		b.WriteString("</ei:resourceID></ei:reportDataSource>")
	}
	if d.ReportType != "" {
		b.WriteString("<ei:reportType>")
		b.WriteString(xmlEscape(d.ReportType))
		b.WriteString("</ei:reportType>")
	}
	if d.ReadingType != "" {
		b.WriteString("<ei:readingType>")
		b.WriteString(xmlEscape(d.ReadingType))
		b.WriteString("</ei:readingType>")
	}
	if d.MarketContext != "" {
		b.WriteString("<emix:marketContext>")
		b.WriteString(xmlEscape(d.MarketContext))
		b.WriteString("</emix:marketContext>")
	}
	if d.SamplingRate != nil {
		minPeriod, err := utils.FormatDuration(d.SamplingRate.MinPeriod)
		if err != nil {
			return "", fmt.Errorf("%w: oadrSamplingRate.oadrMinPeriod: %w", ErrFormat, err)
		}
		maxPeriod, err := utils.FormatDuration(d.SamplingRate.MaxPeriod)
		if err != nil {
			return "", fmt.Errorf("%w: oadrSamplingRate.oadrMaxPeriod: %w", ErrFormat, err)
		}
		b.WriteString("<oadr:oadrSamplingRate>")
		b.WriteString("<oadr:oadrMinPeriod>")
		b.WriteString(minPeriod)
		b.WriteString("</oadr:oadrMinPeriod>")
		b.WriteString("<oadr:oadrMaxPeriod>")
		b.WriteString(maxPeriod)
		b.WriteString("</oadr:oadrMaxPeriod>")
		b.WriteString("<oadr:oadrOnChange>")
		if d.SamplingRate.OnChange {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		b.WriteString("</oadr:oadrOnChange>")
		b.WriteString("</oadr:oadrSamplingRate>")
	}
	b.WriteString("</oadr:oadrReportDescription>")
	return b.String(), nil
}
