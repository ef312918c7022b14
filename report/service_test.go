package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voltgrid/oadr2-ven/oadr"
	"github.com/voltgrid/oadr2-ven/sign"
)

type capturePusher struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     int // number of pushes to fail before succeeding
}

func (p *capturePusher) Push(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail > 0 {
		p.fail--
		return errors.New("vtn unreachable")
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func (p *capturePusher) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.payloads) == 0 {
		return ""
	}
	return string(p.payloads[len(p.payloads)-1])
}

func newTestService(p *capturePusher) *Service {
	return NewService("ven-42", "http://marketcontext.example/standard", sign.Passthrough{}, p, zap.NewNop())
}

func usageCapability(value float64) Capability {
	return Capability{
		SpecifierID: "device-1-usage",
		ReportName:  oadr.ReportNameMetadataTelemetryUsage,
		SamplingRate: oadr.SamplingRate{
			MinPeriod: time.Millisecond,
			MaxPeriod: time.Hour,
		},
		Sources: []Source{{
			RID:         "meter-1",
			ResourceID:  "device-1",
			ReportType:  oadr.ReportTypeUsage,
			ReadingType: oadr.ReadingTypeDirectRead,
			Callback:    func() (float64, error) { return value, nil },
		}},
	}
}

func TestAddReport_Validation(t *testing.T) {
	s := newTestService(&capturePusher{})
	require.NoError(t, s.AddReport(usageCapability(1)))
	assert.Error(t, s.AddReport(usageCapability(1)), "duplicate specifier must be rejected")
	assert.Error(t, s.AddReport(Capability{ReportName: "x"}), "missing specifier ID must be rejected")
	assert.Error(t, s.AddReport(Capability{SpecifierID: "no-sources"}))
	assert.Error(t, s.AddReport(Capability{
		SpecifierID: "nil-callback",
		Sources:     []Source{{RID: "r1"}},
	}))
}

func TestDescriptions(t *testing.T) {
	s := newTestService(&capturePusher{})
	require.NoError(t, s.AddReport(usageCapability(1)))

	descs, err := s.Descriptions("device-1-usage")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "meter-1", descs[0].RID)
	assert.Equal(t, "device-1", descs[0].ResourceID)
	assert.Equal(t, "http://marketcontext.example/standard", descs[0].MarketContext)
	require.NotNil(t, descs[0].SamplingRate)

	_, err = s.Descriptions("unknown")
	assert.Error(t, err)
}

func TestBuildReportSet(t *testing.T) {
	s := newTestService(&capturePusher{})
	cap := usageCapability(1)
	req := &activeRequest{
		id:          "rr-1",
		cap:         &cap,
		granularity: 15 * time.Minute,
	}
	later := time.Date(2024, 1, 1, 0, 15, 0, 0, time.UTC)
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	set := s.buildReportSet(req, []sample{
		{rid: "meter-1", at: later, value: 2.5},
		{rid: "meter-1", at: early, value: 1.5, quality: oadr.QualityGoodNonSpecific},
	})

	require.Len(t, set.Reports, 1)
	rpt := set.Reports[0]
	assert.Equal(t, "rr-1", rpt.ReportRequestID)
	assert.Equal(t, "device-1-usage", rpt.ReportSpecifierID)
	assert.Equal(t, oadr.ReportNameTelemetryUsage, rpt.ReportName,
		"METADATA_ prefix must be stripped on delivered reports")
	require.NotNil(t, set.VenID)
	assert.Equal(t, "ven-42", *set.VenID)

	require.Len(t, rpt.Intervals, 2)
	// Sample order is preserved, dtstart is the earliest interval start.
	assert.Equal(t, later, rpt.Intervals[0].Dtstart)
	assert.Equal(t, early, rpt.Intervals[1].Dtstart)
	require.NotNil(t, rpt.Dtstart)
	assert.Equal(t, early, *rpt.Dtstart)

	require.NotNil(t, rpt.Intervals[1].Payload.DataQuality)
	assert.Equal(t, oadr.QualityGoodNonSpecific, *rpt.Intervals[1].Payload.DataQuality)
	assert.Nil(t, rpt.Intervals[0].Payload.DataQuality)
}

func TestFlush_DeliversRenderedReport(t *testing.T) {
	p := &capturePusher{}
	s := newTestService(p)
	cap := usageCapability(12.5)
	req := &activeRequest{id: "rr-2", cap: &cap, granularity: time.Minute}

	s.collect(req)
	s.flush(context.Background(), req)

	require.Equal(t, 1, p.count())
	body := p.last()
	assert.True(t, strings.Contains(body, "<ei:rID>meter-1</ei:rID>"), body)
	assert.True(t, strings.Contains(body, "<ei:payloadFloat><ei:value>12.5</ei:value></ei:payloadFloat>"), body)
	assert.True(t, strings.Contains(body, "<ei:venID>ven-42</ei:venID>"), body)
	assert.True(t, strings.Contains(body, "<ei:reportName>TELEMETRY_USAGE</ei:reportName>"), body)
}

func TestFlush_EmptyBufferSendsNothing(t *testing.T) {
	p := &capturePusher{}
	s := newTestService(p)
	cap := usageCapability(1)
	req := &activeRequest{id: "rr-3", cap: &cap, granularity: time.Minute}

	s.flush(context.Background(), req)
	assert.Equal(t, 0, p.count())
}

func TestFlush_RequeuesOnceOnPushFailure(t *testing.T) {
	p := &capturePusher{fail: 1}
	s := newTestService(p)
	cap := usageCapability(7)
	req := &activeRequest{id: "rr-4", cap: &cap, granularity: time.Minute}

	s.collect(req)
	s.flush(context.Background(), req) // fails, samples restored
	require.Equal(t, 0, p.count())

	s.flush(context.Background(), req) // retry succeeds
	require.Equal(t, 1, p.count())
	assert.True(t, strings.Contains(p.last(), "<ei:value>7</ei:value>"))
}

func TestCollect_SourceErrorSkipsSample(t *testing.T) {
	p := &capturePusher{}
	s := newTestService(p)
	cap := Capability{
		SpecifierID: "mixed",
		ReportName:  oadr.ReportNameTelemetryUsage,
		Sources: []Source{
			{RID: "ok", Callback: func() (float64, error) { return 1, nil }},
			{RID: "broken", Callback: func() (float64, error) { return 0, errors.New("sensor offline") }},
		},
	}
	req := &activeRequest{id: "rr-5", cap: &cap, granularity: time.Minute}

	s.collect(req)
	samples := req.take()
	require.Len(t, samples, 1)
	assert.Equal(t, "ok", samples[0].rid)
}

func TestStartReporting_Validation(t *testing.T) {
	s := newTestService(&capturePusher{})
	require.NoError(t, s.AddReport(usageCapability(1)))

	_, err := s.StartReporting(context.Background(), "unknown", time.Second, time.Minute)
	assert.Error(t, err)

	_, err = s.StartReporting(context.Background(), "device-1-usage", 2*time.Hour, time.Minute)
	assert.Error(t, err, "granularity above the offered sampling rate must be rejected")
}

func TestStartStopReporting_EndToEnd(t *testing.T) {
	p := &capturePusher{}
	s := newTestService(p)
	require.NoError(t, s.AddReport(usageCapability(3.5)))

	id, err := s.StartReporting(context.Background(), "device-1-usage", 10*time.Millisecond, 0)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Eventually(t, func() bool { return p.count() >= 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, s.StopReporting(id))
	assert.Error(t, s.StopReporting(id), "second stop must report an unknown request")
	s.StopAll()

	assert.True(t, strings.Contains(p.last(), "<ei:reportRequestID>"+id+"</ei:reportRequestID>"))
}
