package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	theme "github.com/goliatone/go-theme"

	intake "github.com/goliatone/go-intake"
	"github.com/goliatone/go-intake/components/orderform"
	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/sheets"
)

const shutdownTimeout = 10 * time.Second

// ginMux adapts a gin engine to the component Mux interface.
type ginMux struct {
	engine *gin.Engine
}

func (g ginMux) Handle(pattern string, handler http.Handler) {
	g.engine.Any(pattern, gin.WrapH(handler))
}

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	provider, err := buildProvider(cfg.Catalog)
	if err != nil {
		log.Fatalf("build catalog provider: %v", err)
	}

	sink, err := sheets.NewHTTPSink(
		sheets.WithEndpoint(cfg.Sheets.Endpoint),
		sheets.WithTimeout(cfg.Sheets.Timeout),
	)
	if err != nil {
		log.Fatalf("build sheets sink: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	pattern, err := orderform.RegisterRoutes(ginMux{engine: engine}, cfg.Server.BasePath,
		orderform.WithProvider(provider),
		orderform.WithSink(sink),
		orderform.WithSpreadsheet(cfg.Sheets.SpreadsheetID, cfg.Sheets.Range),
		orderform.WithTheme(buildTheme(cfg.Theme)),
	)
	if err != nil {
		log.Fatalf("register routes: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: engine,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("order form mounted at %s, listening on %s", pattern, cfg.Server.Addr)
		errs <- server.ListenAndServe()
	}()

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	case <-stop.Done():
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	}
}

// buildProvider selects the HTTP catalog when a base URL is configured and
// falls back to the built-in demo catalog otherwise.
func buildProvider(cfg config.Catalog) (catalog.Provider, error) {
	if cfg.BaseURL == "" {
		return catalog.NewStaticProvider(intake.DemoProducts()), nil
	}
	return catalog.NewHTTPProvider(
		catalog.WithBaseURL(cfg.BaseURL),
		catalog.WithTimeout(cfg.Timeout),
	)
}

func buildTheme(cfg config.Theme) *theme.RendererConfig {
	if cfg.Name == "" {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   cfg.Name,
		Variant: cfg.Variant,
	}
}
