package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phildaponte/senior-strength/internal/api"
	"github.com/phildaponte/senior-strength/internal/app/notify"
	"github.com/phildaponte/senior-strength/internal/app/progress"
	"github.com/phildaponte/senior-strength/internal/app/report"
	"github.com/phildaponte/senior-strength/internal/app/sentiment"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/health"
	"github.com/phildaponte/senior-strength/internal/infra/mail"
	_ "github.com/phildaponte/senior-strength/internal/infra/metrics" // Register Prometheus metrics
	"github.com/phildaponte/senior-strength/internal/infra/push"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// Daemon is the core engine runtime. It wires together all services.
type Daemon struct {
	Config     Config
	DB         *sqlite.DB
	Progress   *progress.Service
	Analyzer   *sentiment.Analyzer
	Dispatcher *notify.Dispatcher
	Detector   *notify.InactivityDetector
	Digests    *report.Composer
	Health     *health.Checker
	Server     *api.Server
	cancel     context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	storeDir := cfg.Store.Dir
	if storeDir == "" {
		storeDir = appHome()
	}
	db, err := sqlite.Open(storeDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	svc := progress.NewService(db)

	var primary sentiment.Classifier
	if cfg.Classifier.Endpoint != "" {
		primary = sentiment.NewRemoteClassifier(
			cfg.Classifier.Endpoint,
			cfg.Classifier.APIKey,
			cfg.Classifier.Model,
			time.Duration(cfg.Classifier.TimeoutSec)*time.Second,
		)
	}
	analyzer := sentiment.NewAnalyzer(primary)

	pushClient := push.NewExpoClient(cfg.Push.Endpoint, time.Duration(cfg.Push.TimeoutSec)*time.Second)
	mailClient := mail.NewPostmarkClient(
		cfg.Email.Endpoint,
		cfg.Email.ServerToken,
		cfg.Email.From,
		time.Duration(cfg.Email.TimeoutSec)*time.Second,
	)

	dispatcher := notify.NewDispatcher(pushClient, mailClient, time.Duration(cfg.Push.SendDelayMS)*time.Millisecond)
	detector := notify.NewInactivityDetector(db, dispatcher)
	digests := report.NewComposer(db, dispatcher)

	checker := health.NewChecker(db, storeDir)

	srv := api.NewServer(db, svc, analyzer, detector, digests, dispatcher, version)
	srv.SetHealth(checker)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:     cfg,
		DB:         db,
		Progress:   svc,
		Analyzer:   analyzer,
		Dispatcher: dispatcher,
		Detector:   detector,
		Digests:    digests,
		Health:     checker,
		Server:     srv,
	}, nil
}

// Serve starts the HTTP server and background jobs, blocking until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	if d.Config.Jobs.InactivityScan || d.Config.Jobs.WeeklyDigest {
		go d.runJobs(ctx)
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Senior Strength engine serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// runJobs fires the scheduled jobs at their configured local hours. A
// per-job last-run guard keeps each job to at most one run per day.
func (d *Daemon) runJobs(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	var lastScan, lastDigest string
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			day := now.Format("2006-01-02")

			if d.Config.Jobs.InactivityScan &&
				now.Hour() == d.Config.Jobs.InactivityHour && lastScan != day {
				lastScan = day
				summary := d.Detector.Run(ctx, domain.DateOf(now))
				log.Printf("[jobs] inactivity scan: processed=%d success=%v", summary.Processed, summary.Success)
			}

			if d.Config.Jobs.WeeklyDigest &&
				strings.EqualFold(now.Weekday().String(), d.Config.Jobs.WeeklyDigestDay) &&
				now.Hour() == d.Config.Jobs.WeeklyDigestHour && lastDigest != day {
				lastDigest = day
				summary := d.Digests.RunAll(ctx, domain.DateOf(now))
				log.Printf("[jobs] weekly digest: processed=%d success=%v", summary.Processed, summary.Success)
			}
		}
	}
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
