package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/budgetbuddy/internal/amqp"
	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/config"
	"github.com/mmynk/budgetbuddy/internal/insight"
	"github.com/mmynk/budgetbuddy/internal/insight/gemini"
	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/service"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

const (
	apiPrefix       = "/budgetbuddy.v1."
	shutdownTimeout = 30 * time.Second
	amqpAttempts    = 5
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long: `Serve the Connect API, the static frontend and Prometheus metrics.

Examples:
  # In-memory storage, AI insights disabled
  BUDGETBUDDY_AUTH_JWT_SECRET=dev budgetbuddy serve

  # SQLite storage and Gemini insights
  budgetbuddy serve --storage sqlite --db ./data/budgetbuddy.db --ai-provider gemini`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().Int("port", 8080, "HTTP port")
	cmd.Flags().String("static", "./static", "directory of static frontend files")
	cmd.Flags().String("storage", "memory", "storage backend (memory, sqlite)")
	cmd.Flags().String("db", "./data/budgetbuddy.db", "SQLite database path")
	cmd.Flags().String("ai-provider", "none", "insight provider (gemini, none)")

	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.static_path", cmd.Flags().Lookup("static"))
	_ = viper.BindPFlag("storage.backend", cmd.Flags().Lookup("storage"))
	_ = viper.BindPFlag("storage.sqlite_path", cmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("ai.provider", cmd.Flags().Lookup("ai-provider"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	gw, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer gw.Close()
	repo := storage.NewRepository(gw)

	var ledgerOpts []ledger.Option
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, amqpAttempts)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		defer client.Close()
		ledgerOpts = append(ledgerOpts, ledger.WithNotifier(client))
		slog.Info("Budget alerts enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	gen, chat, err := newInsightProviders(ctx, cfg)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(repo)
	ledgers := ledger.NewManager(repo, ledgerOpts...)

	mux := http.NewServeMux()
	service.Mount(mux,
		service.NewAuthService(authenticator, authenticator, jwtManager, logger),
		service.NewLedgerService(ledgers, logger),
		service.NewInsightService(ledgers, insight.NewRequestor(gen, insight.Currency{Code: cfg.CurrencyCode, Symbol: cfg.CurrencySymbol}, cfg.AITimeout), chat, logger,
			service.WithChatIdleTimeout(cfg.AIChatIdleTimeout)),
		jwtManager,
	)
	mux.Handle("/metrics", promhttp.Handler())

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// h2c serves HTTP/2 without TLS, which Connect streaming needs.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server stopped gracefully")
	return nil
}

// newInsightProviders returns the one-shot generator and the chat provider.
// With no provider configured both answer with insight.ErrUnavailable.
func newInsightProviders(ctx context.Context, cfg *config.Config) (insight.Generator, insight.ChatProvider, error) {
	if cfg.AIProvider != config.ProviderGemini {
		slog.Info("AI insights disabled")
		return insight.Unavailable{}, insight.Unavailable{}, nil
	}
	client, err := gemini.New(ctx, cfg.AIAPIKey, cfg.AIModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	slog.Info("AI insights enabled", "provider", cfg.AIProvider, "model", client.Model())
	return client, client, nil
}

// staticHandler serves files from dir. Unknown paths fall back to index.html;
// RPC paths that reach it are not registered procedures and get a 404.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
