// Package daemon wires every actor together in dependency order (Notifier,
// Tray, App Tracker, Timer, IPC Server, Digest Scheduler) and drives them
// from a single process lifetime.
package daemon

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/fluxhq/flux/internal/apptracker"
	"github.com/fluxhq/flux/internal/config"
	"github.com/fluxhq/flux/internal/digest"
	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/ipc"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/notifier"
	"github.com/fluxhq/flux/internal/paths"
	"github.com/fluxhq/flux/internal/shutdown"
	"github.com/fluxhq/flux/internal/store/sqlite"
	"github.com/fluxhq/flux/internal/store/suggestions"
	tracing "github.com/fluxhq/flux/internal/telemetry"
	"github.com/fluxhq/flux/internal/timer"
	"github.com/fluxhq/flux/internal/tray"
)

// Daemon owns every actor and the resources (database handle, socket,
// tracer) they share for one process lifetime.
type Daemon struct {
	cfg      config.Config
	db       *sql.DB
	shutdown *shutdown.Signal

	timerActor    *timer.Actor
	timerHandle   timer.Handle
	trackerActor  *apptracker.Actor
	notifierActor *notifier.Actor
	digestActor   *digest.Actor
	ipcServer     *ipc.Server
	trayBox       *tray.Box
	trayRuntime   *tray.Runtime
	trayActions   chan tray.Action
	tracer        *tracing.Provider
}

// New wires every actor from cfg. The returned Daemon has not started any
// goroutines yet; call Run to do so.
func New(cfg config.Config) (*Daemon, error) {
	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("daemon: open database: %w", err)
	}

	tracerCfg := tracing.DefaultConfig()
	tracerCfg.Enabled = cfg.Tracing.Enabled
	tracerCfg.Exporter = cfg.Tracing.Exporter
	tracerCfg.FilePath = cfg.Tracing.FilePath
	if cfg.Tracing.OTLPAddr != "" {
		tracerCfg.OTLPEndpoint = cfg.Tracing.OTLPAddr
	}
	tracer, err := tracing.NewProvider(tracerCfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("daemon: init tracer: %w", err)
	}

	sessionRepo := sqlite.NewSessionRepository(db)
	appUsageRepo := sqlite.NewAppUsageRepository(db)
	metricsRepo := sqlite.NewMetricsRepository(db)
	suggestionStore := suggestions.NewFileStore(cfg.Storage.SuggestionsPath)

	sig := shutdown.New()

	notifierActor, notifierHandle := notifier.New(notifier.Config{
		CheckInTimeout:        cfg.Notifier.CheckInTimeout(),
		MaxConcurrentDispatch: cfg.Notifier.MaxConcurrentDispatch,
		NotificationTitle:     cfg.Localization.NotificationTitle,
		Tracer:                tracer.Tracer(),
	})

	trayBox := tray.NewBox()
	trayActions := make(chan tray.Action, mailboxCapacity)

	var detector apptracker.Detector
	if cfg.Tracker.ScriptDetectorPath != "" {
		detector = apptracker.NewScriptDetector(cfg.Tracker.ScriptDetectorPath)
	} else {
		detector = apptracker.DefaultDetector()
	}

	trackerActor, trackerHandle := apptracker.New(apptracker.Config{
		AppUsage:             appUsageRepo,
		Metrics:              metricsRepo,
		Suggestions:          suggestionStore,
		Notifier:             notifierHandle,
		Detector:             detector,
		SampleInterval:       cfg.Tracker.SampleInterval(),
		ShortBurstThreshold:  cfg.Tracker.ShortBurstThreshold(),
		DistractionApps:      cfg.Tracker.DistractionApplications,
		FrictionApps:         cfg.Tracker.FrictionApplications,
		Whitelist:            cfg.Tracker.Whitelist,
		AlertingEnabled:      cfg.Tracker.DistractionAlertingEnabled,
		DistractionThreshold: cfg.Tracker.DistractionThreshold(),
		FrictionThreshold:    cfg.Tracker.FrictionThreshold(),
		Tracer:               tracer.Tracer(),
	})

	timerActor, timerHandle := timer.New(timer.Config{
		Repo:            sessionRepo,
		Notifier:        notifierHandle,
		Tracker:         trackerHandle,
		Tray:            trayBox,
		Thresholds:      cfg.Timer.CheckInThresholdPercents,
		DefaultDuration: cfg.Timer.DefaultDuration(),
		DefaultMode:     domain.ParseMode(cfg.DefaultMode),
		Shutdown:        sig.C(),
		Tracer:          tracer.Tracer(),
	})

	digestActor := digest.New(digest.Config{
		Repo:     sessionRepo,
		Notifier: notifierHandle,
		Weekday:  digest.ParseWeekday(cfg.Digest.Weekday),
		Hour:     cfg.Digest.Hour,
		Lookback: cfg.Digest.Lookback(),
	})

	socketPath, err := paths.SocketPath()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("daemon: resolve socket path: %w", err)
	}
	ipcServer := ipc.NewServer(socketPath, timerHandle, sig).WithTracer(tracer.Tracer())

	trayRuntime := &tray.Runtime{Actions: trayActions, Timer: timerHandle, Shutdown: sig}

	return &Daemon{
		cfg:           cfg,
		db:            db,
		shutdown:      sig,
		timerActor:    timerActor,
		timerHandle:   timerHandle,
		trackerActor:  trackerActor,
		notifierActor: notifierActor,
		digestActor:   digestActor,
		ipcServer:     ipcServer,
		trayBox:       trayBox,
		trayRuntime:   trayRuntime,
		trayActions:   trayActions,
		tracer:        tracer,
	}, nil
}

const mailboxCapacity = 32

// Shutdown triggers the broadcast shutdown signal, unblocking every actor's
// select loop.
func (d *Daemon) Shutdown() { d.shutdown.Trigger() }

// Run starts every actor's goroutine and blocks until all of them have
// exited following a shutdown trigger or ctx cancellation.
func (d *Daemon) Run(ctx context.Context) error {
	defer func() {
		if err := d.tracer.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTelemetry, "tracer shutdown failed", err)
		}
		if err := d.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "database close failed", err)
		}
	}()

	var wg sync.WaitGroup
	var ipcErr error

	wg.Add(6)
	go func() { defer wg.Done(); d.notifierActor.Run(ctx, d.shutdown.C()) }()
	go func() { defer wg.Done(); d.trackerActor.Run(ctx, d.shutdown.C()) }()
	go func() { defer wg.Done(); d.timerActor.Run(ctx) }()
	go func() { defer wg.Done(); d.digestActor.Run(ctx, d.shutdown.C()) }()
	go func() { defer wg.Done(); d.trayRuntime.Run(ctx) }()
	go func() {
		defer wg.Done()
		if err := d.ipcServer.Run(ctx); err != nil {
			ipcErr = fmt.Errorf("ipc server: %w", err)
			d.shutdown.Trigger()
		}
	}()

	log.Info(log.CatDaemon, "flux daemon started")
	wg.Wait()
	log.Info(log.CatDaemon, "flux daemon stopped")
	return ipcErr
}
