package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/browsekit/navigator/internal/api/handler"
	"github.com/browsekit/navigator/internal/api/routes"
	"github.com/browsekit/navigator/internal/config"
	"github.com/browsekit/navigator/internal/drift"
	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/monitor"
	"github.com/browsekit/navigator/internal/navigate"
	"github.com/browsekit/navigator/internal/repositories/bookmark"
	"github.com/browsekit/navigator/internal/repositories/override"
	"github.com/browsekit/navigator/internal/resolver"
	"github.com/browsekit/navigator/internal/utils/timesutil"
	"github.com/browsekit/navigator/pkg/auth"
	authjwt "github.com/browsekit/navigator/pkg/auth/jwt"
	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/lua"
	"github.com/browsekit/navigator/pkg/metrics"
	"github.com/browsekit/navigator/pkg/persistence/store/file"
	"github.com/browsekit/navigator/pkg/persistence/store/memory"
	"github.com/browsekit/navigator/pkg/rest/middleware"
)

func main() {
	cfg := config.GetInstance()
	setupDefaultLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.API().AuthSecret == "" {
		bslog.Fatal("no auth secret configured")
	}
	if err := authjwt.InitServiceTokenManager([]byte(cfg.API().AuthSecret), string(authjwt.ADMIN)); err != nil {
		bslog.Fatal("unable to init token manager", slog.String("reason", err.Error()))
	}

	overrides, err := override.NewRepo(memory.NewStore[model.Override](), override.DefaultEntries()...)
	if err != nil {
		bslog.Fatal("unable to seed override table", slog.String("reason", err.Error()))
	}

	bookmarks := bookmark.NewRepo(file.NewStore[model.Bookmark](cfg.Bookmarks().Path))

	res := resolver.New(overrides, slog.Default(),
		resolver.WithFallbackTimeout(cfg.Resolver().FallbackTimeout),
	)
	nav := navigate.New(res, slog.Default())

	h, zlog, err := handler.NewHandler(cfg, overrides, bookmarks, res, nav)
	if err != nil {
		bslog.Fatal("unable to create handler", slog.String("reason", err.Error()))
	}
	defer zlog.Sync()
	defer lua.Shutdown()

	if cfg.Monitor().Enabled {
		mon := monitor.NewMonitor(zlog,
			monitor.WithProbeType(cfg.Monitor().CheckType, cfg.Monitor().LuaScript),
		)
		mon.Start()
		defer mon.Stop()
		go syncMonitorTargets(ctx, mon, overrides, cfg.Monitor().Interval)
		h.SetReachability(mon)
	}

	if cfg.Drift().Enabled {
		detector := drift.NewDetector(cfg.Drift().Zone, cfg.Drift().NameServer, overrides,
			drift.WithInterval(cfg.Drift().Interval),
		)
		detector.StartAutoPoll(ctx)
		defer detector.Stop()
		h.SetDriftReader(detector)
	}

	server := &http.Server{
		Addr:    cfg.API().Port,
		Handler: newMux(h),
	}

	go func() {
		bslog.Info("navigator listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			bslog.Fatal("server failed", slog.String("reason", err.Error()))
		}
	}()

	<-ctx.Done()
	bslog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		bslog.Error("graceful shutdown failed", slog.String("reason", err.Error()))
	}
}

func newMux(h *handler.Handler) http.Handler {
	logged := middleware.Chain(
		middleware.WithIncomingRequestLogging(slog.Default()),
		middleware.WithRequestMetrics(),
	)
	protected := middleware.Chain(
		middleware.WithIncomingRequestLogging(slog.Default()),
		middleware.WithRequestMetrics(),
		auth.WithTokenValidation(slog.Default()),
	)

	mux := http.NewServeMux()

	// open endpoints
	mux.HandleFunc(routes.POST_AUTH_LOGIN, logged(h.PostLogin))
	mux.Handle(routes.GET_METRICS, metrics.Handler())

	// everything else needs a token
	mux.HandleFunc(routes.GET_OVERRIDES, protected(h.GetOverrides))
	mux.HandleFunc(routes.GET_OVERRIDES_HASH, protected(h.GetOverridesHash))
	mux.HandleFunc(routes.GET_OVERRIDE, protected(h.GetOverride))
	mux.HandleFunc(routes.POST_OVERRIDE, protected(h.CreateOverride))
	mux.HandleFunc(routes.DELETE_OVERRIDE, protected(h.DeleteOverride))
	mux.HandleFunc(routes.DELETE_ALL_OVERRIDE, protected(h.ClearOverrides))
	mux.HandleFunc(routes.GET_DRIFT, protected(h.GetDrift))
	mux.HandleFunc(routes.GET_RESOLVE, protected(h.GetResolve))
	mux.HandleFunc(routes.POST_NAVIGATE, protected(h.PostNavigate))
	mux.HandleFunc(routes.GET_BOOKMARKS, protected(h.GetBookmarks))
	mux.HandleFunc(routes.POST_BOOKMARK, protected(h.CreateBookmark))
	mux.HandleFunc(routes.DELETE_BOOKMARK, protected(h.DeleteBookmark))

	return mux
}

// syncMonitorTargets keeps the monitored set aligned with the override
// table, picking up entries added or removed through the API.
func syncMonitorTargets(ctx context.Context, mon *monitor.Monitor, overrides *override.Repo, interval time.Duration) {
	sync := func() {
		entries, err := overrides.ReadAll()
		if err != nil {
			bslog.Error("unable to read override entries", slog.String("reason", err.Error()))
			return
		}
		mon.SyncTargets(entries, timesutil.FromDuration(interval))
	}

	sync()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sync()
		}
	}
}

func setupDefaultLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: bslog.BaseReplaceAttr,
	}

	var base slog.Handler = slog.NewJSONHandler(os.Stdout, opts)

	switch cfg.Server().Environment {
	case "development", "dev", "DEV":
		opts.Level = slog.LevelDebug
		base = bslog.NewHandler(
			slog.NewTextHandler(os.Stdout, opts),
			bslog.InDevMode(),
		)
	}

	slog.SetDefault(slog.New(base))
}
