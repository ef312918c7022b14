package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voltgrid/oadr2-ven/oadr"
	"github.com/voltgrid/oadr2-ven/render"
	"github.com/voltgrid/oadr2-ven/sign"
	"github.com/voltgrid/oadr2-ven/transport"
)

// Callback reads one measurement value from a data source.
type Callback func() (float64, error)

// Source is one r_id data stream inside a report capability.
type Source struct {
	RID         string
	ResourceID  string
	ReportType  string
	ReadingType string
	// DataQuality, when set, is attached to every payload from this source.
	DataQuality string
	Callback    Callback
}

// Capability describes one report this VEN can deliver.
type Capability struct {
	SpecifierID  string
	ReportName   string
	Duration     time.Duration
	SamplingRate oadr.SamplingRate
	Sources      []Source
}

// Service owns the VEN's report capabilities, samples their sources, and
// delivers update-report messages to the VTN.
type Service struct {
	venID         string
	marketContext string
	builder       *render.PayloadBuilder
	signer        sign.Signer
	pusher        transport.Pusher
	log           *zap.Logger

	mu       sync.Mutex
	caps     map[string]*Capability
	requests map[string]*activeRequest
	wg       sync.WaitGroup
}

type sample struct {
	rid     string
	quality string
	at      time.Time
	value   float64
}

// activeRequest is one running report delivery: a sampling cadence
// (granularity), a delivery cadence (reportBack), and the samples buffered
// between deliveries.
type activeRequest struct {
	id          string
	cap         *Capability
	granularity time.Duration
	reportBack  time.Duration
	cancel      context.CancelFunc

	mu          sync.Mutex
	pending     []sample
	redelivered bool
}

func (r *activeRequest) add(samples ...sample) {
	r.mu.Lock()
	r.pending = append(r.pending, samples...)
	r.mu.Unlock()
}

func (r *activeRequest) take() []sample {
	r.mu.Lock()
	out := r.pending
	r.pending = nil
	r.mu.Unlock()
	return out
}

// restore puts unsent samples back at the front of the buffer so a later
// delivery keeps interval order.
func (r *activeRequest) restore(samples []sample) {
	r.mu.Lock()
	r.pending = append(samples, r.pending...)
	r.mu.Unlock()
}

// NewService creates a report service. venID may be empty when the VTN has
// not assigned one yet; it is then omitted from outgoing messages.
func NewService(venID, marketContext string, signer sign.Signer, pusher transport.Pusher, log *zap.Logger) *Service {
	return &Service{
		venID:         venID,
		marketContext: marketContext,
		builder:       render.NewPayloadBuilder(),
		signer:        signer,
		pusher:        pusher,
		log:           log,
		caps:          map[string]*Capability{},
		requests:      map[string]*activeRequest{},
	}
}

// AddReport registers a report capability. Sources without an explicit
// sampling rate get the 10 second default.
func (s *Service) AddReport(c Capability) error {
	if c.SpecifierID == "" {
		return fmt.Errorf("report capability needs a specifier ID")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("report capability %s has no data sources", c.SpecifierID)
	}
	for _, src := range c.Sources {
		if src.RID == "" {
			return fmt.Errorf("report capability %s has a source without an r_id", c.SpecifierID)
		}
		if src.Callback == nil {
			return fmt.Errorf("source %s of %s has no callback", src.RID, c.SpecifierID)
		}
	}
	if c.SamplingRate.MinPeriod == 0 && c.SamplingRate.MaxPeriod == 0 {
		c.SamplingRate = oadr.SamplingRate{MinPeriod: 10 * time.Second, MaxPeriod: 10 * time.Second}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.caps[c.SpecifierID]; ok {
		return fmt.Errorf("report capability %s already registered", c.SpecifierID)
	}
	s.caps[c.SpecifierID] = &c
	s.log.Info("registered report capability",
		zap.String("specifierID", c.SpecifierID),
		zap.String("reportName", c.ReportName),
		zap.Int("sources", len(c.Sources)))
	return nil
}

// Descriptions returns the report descriptions for a registered capability,
// one per data source.
func (s *Service) Descriptions(specifierID string) ([]oadr.ReportDescription, error) {
	s.mu.Lock()
	c, ok := s.caps[specifierID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown report specifier %s", specifierID)
	}
	descs := make([]oadr.ReportDescription, 0, len(c.Sources))
	for _, src := range c.Sources {
		rate := c.SamplingRate
		descs = append(descs, oadr.ReportDescription{
			RID:           src.RID,
			ResourceID:    src.ResourceID,
			ReportType:    src.ReportType,
			ReadingType:   src.ReadingType,
			MarketContext: s.marketContext,
			SamplingRate:  &rate,
		})
	}
	return descs, nil
}

// StartReporting begins sampling a capability's sources every granularity
// and delivering the buffered intervals every reportBack. A reportBack at or
// below the granularity delivers after every sample. The returned report
// request ID identifies the run for StopReporting.
func (s *Service) StartReporting(ctx context.Context, specifierID string, granularity, reportBack time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caps[specifierID]
	if !ok {
		return "", fmt.Errorf("unknown report specifier %s", specifierID)
	}
	if granularity == 0 {
		granularity = c.SamplingRate.MaxPeriod
	}
	if granularity < c.SamplingRate.MinPeriod || granularity > c.SamplingRate.MaxPeriod {
		return "", fmt.Errorf("granularity %s outside the offered sampling rate [%s, %s] of %s",
			granularity, c.SamplingRate.MinPeriod, c.SamplingRate.MaxPeriod, specifierID)
	}
	rctx, cancel := context.WithCancel(ctx)
	req := &activeRequest{
		id:          uuid.NewString(),
		cap:         c,
		granularity: granularity,
		reportBack:  reportBack,
		cancel:      cancel,
	}
	s.requests[req.id] = req
	s.wg.Add(1)
	go s.runLoop(rctx, req)
	s.log.Info("started reporting",
		zap.String("specifierID", specifierID),
		zap.String("reportRequestID", req.id),
		zap.Duration("granularity", granularity),
		zap.Duration("reportBack", reportBack))
	return req.id, nil
}

// StopReporting cancels a running report. Already-buffered samples are
// delivered one last time before the loop exits.
func (s *Service) StopReporting(reportRequestID string) error {
	s.mu.Lock()
	req, ok := s.requests[reportRequestID]
	if ok {
		delete(s.requests, reportRequestID)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no running report with request ID %s", reportRequestID)
	}
	req.cancel()
	return nil
}

// StopAll cancels every running report and waits for their final deliveries.
func (s *Service) StopAll() {
	s.mu.Lock()
	for id, req := range s.requests {
		req.cancel()
		delete(s.requests, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Service) runLoop(ctx context.Context, req *activeRequest) {
	defer s.wg.Done()
	sampleTicker := time.NewTicker(req.granularity)
	defer sampleTicker.Stop()

	// A separate delivery cadence only exists when reportBack exceeds the
	// sampling granularity; otherwise each sample is sent as it is taken.
	var sendC <-chan time.Time
	if req.reportBack > req.granularity {
		sendTicker := time.NewTicker(req.reportBack)
		defer sendTicker.Stop()
		sendC = sendTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.flush(flushCtx, req)
			cancel()
			return
		case <-sampleTicker.C:
			s.collect(req)
			if sendC == nil {
				s.flush(ctx, req)
			}
		case <-sendC:
			s.flush(ctx, req)
		}
	}
}

// collect reads every source of the request once. A failing source is
// logged and skipped; the other sources still produce samples.
func (s *Service) collect(req *activeRequest) {
	now := time.Now().UTC()
	for _, src := range req.cap.Sources {
		v, err := src.Callback()
		if err != nil {
			sampleErrors.Inc()
			s.log.Warn("data source read failed",
				zap.String("specifierID", req.cap.SpecifierID),
				zap.String("rID", src.RID),
				zap.Error(err))
			continue
		}
		samplesCollected.Inc()
		req.add(sample{rid: src.RID, quality: src.DataQuality, at: now, value: v})
	}
}

// flush renders, signs, and pushes the buffered samples as one
// oadrUpdateReport. On a push failure the samples are put back once so the
// next delivery retries them; a second failure drops them.
func (s *Service) flush(ctx context.Context, req *activeRequest) {
	samples := req.take()
	if len(samples) == 0 {
		return
	}
	set := s.buildReportSet(req, samples)
	payload, err := s.builder.BuildUpdateReport(set)
	if err != nil {
		renderFailures.Inc()
		s.log.Error("report render failed",
			zap.String("reportRequestID", req.id),
			zap.Error(err))
		return
	}
	signed, err := s.signer.Sign(payload)
	if err != nil {
		s.log.Error("report signing failed",
			zap.String("reportRequestID", req.id),
			zap.Error(err))
		return
	}
	if err := s.pusher.Push(ctx, signed); err != nil {
		pushFailures.Inc()
		if !req.redelivered {
			req.restore(samples)
			req.redelivered = true
			s.log.Warn("report delivery failed, samples held for the next delivery",
				zap.String("reportRequestID", req.id),
				zap.Int("samples", len(samples)),
				zap.Error(err))
		} else {
			s.log.Error("report delivery failed again, dropping samples",
				zap.String("reportRequestID", req.id),
				zap.Int("samples", len(samples)),
				zap.Error(err))
		}
		return
	}
	req.redelivered = false
	reportsSent.Inc()
	s.log.Info("delivered report",
		zap.String("reportRequestID", req.id),
		zap.Int("intervals", len(samples)))
}
