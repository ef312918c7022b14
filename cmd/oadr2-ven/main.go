package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/voltgrid/oadr2-ven/config"
	"github.com/voltgrid/oadr2-ven/internal/logging"
	"github.com/voltgrid/oadr2-ven/oadr"
	"github.com/voltgrid/oadr2-ven/ops"
	"github.com/voltgrid/oadr2-ven/render"
	"github.com/voltgrid/oadr2-ven/report"
	"github.com/voltgrid/oadr2-ven/sign"
	"github.com/voltgrid/oadr2-ven/transport"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|run")
	configPath := flag.String("config", "", "path to config.yml")
	vtnURL := flag.String("vtn", "", "VTN base URL (overrides config)")
	flag.Parse()

	if err := config.LoadAppConfig(*configPath); err != nil {
		panic(err)
	}
	cfg := config.Config
	if *vtnURL != "" {
		cfg.VTN.URL = *vtnURL
	}
	log := logging.New(cfg.Logging)
	defer func() { _ = log.Sync() }()

	switch *mode {
	case "oneshot":
		buf, err := renderSample(cfg)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(buf))
	case "run":
		run(cfg, log)
	default:
		panic("unknown mode")
	}
}

// renderSample renders one update report with a single reading so the output
// shape can be inspected or piped into schema validation tooling.
func renderSample(cfg config.AppConfig) ([]byte, error) {
	now := time.Now().UTC()
	granularity := time.Duration(cfg.Reporting.SamplingRateMS) * time.Millisecond
	value := 12.5
	rpt := oadr.Report{
		Dtstart:           &now,
		Duration:          &granularity,
		ReportID:          "sample-report",
		ReportRequestID:   "sample-request",
		ReportSpecifierID: "sample-specifier",
		ReportName:        oadr.ReportNameTelemetryUsage,
		CreatedDateTime:   now,
		Intervals: []oadr.Interval{{
			Dtstart:  now,
			Duration: &granularity,
			Payload:  oadr.ReportPayload{RID: "meter-1", Value: &value},
		}},
	}
	set := &oadr.ReportSet{RequestID: "sample", Reports: []oadr.Report{rpt}}
	if cfg.VEN.ID != "" {
		id := cfg.VEN.ID
		set.VenID = &id
	}
	return render.NewPayloadBuilder().BuildUpdateReport(set)
}

func run(cfg config.AppConfig, log *zap.Logger) {
	pusher := transport.NewClient(cfg.VTN.URL,
		time.Duration(cfg.VTN.PushTimeoutMS)*time.Millisecond, log)
	svc := report.NewService(cfg.VEN.ID, cfg.VEN.MarketContext, sign.Passthrough{}, pusher, log)

	// Demo instrumentation: a random-walk usage reading. Real deployments
	// register their own callbacks against real meters.
	reading := 1000.0
	if err := svc.AddReport(report.Capability{
		SpecifierID: cfg.VEN.Name + "-usage",
		ReportName:  oadr.ReportNameMetadataTelemetryUsage,
		SamplingRate: oadr.SamplingRate{
			MinPeriod: time.Second,
			MaxPeriod: time.Hour,
		},
		Sources: []report.Source{{
			RID:         "meter-1",
			ResourceID:  cfg.VEN.Name,
			ReportType:  oadr.ReportTypeUsage,
			ReadingType: oadr.ReadingTypeDirectRead,
			Callback: func() (float64, error) {
				reading += rand.Float64()*10 - 5
				return reading, nil
			},
		}},
	}); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := svc.StartReporting(ctx, cfg.VEN.Name+"-usage",
		time.Duration(cfg.Reporting.SamplingRateMS)*time.Millisecond,
		time.Duration(cfg.Reporting.ReportBackMS)*time.Millisecond); err != nil {
		panic(err)
	}
	opsSrv := ops.Start(cfg.Ops.Port, cfg.VEN.ID, log)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown signal received")

	cancel()
	svc.StopAll()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	opsSrv.Shutdown(shutdownCtx)
}
