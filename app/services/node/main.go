package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/forgecoin/forgecoin/app/services/node/handlers"
	"github.com/forgecoin/forgecoin/foundation/events"
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/digest"
	"github.com/forgecoin/forgecoin/foundation/ledger/genesis"
	"github.com/forgecoin/forgecoin/foundation/ledger/state"
	"github.com/forgecoin/forgecoin/foundation/ledger/storage/badgerdb"
	"github.com/forgecoin/forgecoin/foundation/ledger/storage/disk"
	"github.com/forgecoin/forgecoin/foundation/ledger/storage/memory"
	"github.com/forgecoin/forgecoin/foundation/ledger/worker"
	"github.com/forgecoin/forgecoin/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags
// in the makefile.
var build = "develop"

func main() {
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
		}
		Node struct {
			Beneficiary string `conf:"default:0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"`
			DBDriver    string `conf:"default:disk"`
			DBPath      string `conf:"default:zledger/blocks"`
			GenesisPath string `conf:"default:zledger/genesis.json"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "forgecoin ledger node",
		},
	}

	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	gen, err := genesis.Load(cfg.Node.GenesisPath)
	if err != nil {
		return fmt.Errorf("unable to load genesis file: %w", err)
	}

	if err := digest.Select(gen.HashAlgorithm); err != nil {
		return fmt.Errorf("selecting hash algorithm: %w", err)
	}

	beneficiaryID, err := database.ToAccountID(cfg.Node.Beneficiary)
	if err != nil {
		return fmt.Errorf("invalid beneficiary account: %w", err)
	}

	var storage database.Serializer
	switch cfg.Node.DBDriver {
	case "memory":
		storage, err = memory.New()
	case "disk":
		storage, err = disk.New(cfg.Node.DBPath)
	case "badger":
		storage, err = badgerdb.New(cfg.Node.DBPath)
	default:
		return fmt.Errorf("unknown db driver %q", cfg.Node.DBDriver)
	}
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	// The events value is shared with the websocket handlers so clients can
	// observe transaction admission and block lifecycle.
	evts := events.New()

	// An event handler function streams significant ledger activity into
	// the service log.
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
	}

	st, err := state.New(state.Config{
		BeneficiaryID: beneficiaryID,
		Genesis:       gen,
		Storage:       storage,
		Events:        evts,
		EvHandler:     ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger state: %w", err)
	}
	defer st.Shutdown()

	worker.Run(st, ev)

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the
	// debug related endpoints. This includes the standard library endpoints.
	debugMux := handlers.DebugMux(build, log)

	// Start the service listening for debug requests. Not concerned with
	// shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing public API support")

	// Make a channel to listen for an interrupt or terminate signal from the
	// OS. Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    st,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
