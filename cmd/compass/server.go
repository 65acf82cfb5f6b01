package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/api"
	"github.com/kalambet/careercompass/internal/catalog"
	"github.com/kalambet/careercompass/internal/completion"
	"github.com/kalambet/careercompass/internal/config"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/storage"
	"github.com/kalambet/careercompass/internal/wizard"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the CareerCompass server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		withMCP, _ := cmd.Flags().GetBool("mcp")
		return runServer(withMCP)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func init() {
	startCmd.Flags().Bool("mcp", false, "also serve MCP tools over stdin/stdout")
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "compass.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// services is everything the HTTP and MCP surfaces share.
type services struct {
	sessions *wizard.Registry
	app      api.AppDeps
	mcp      api.MCPDeps
	closers  []func() error
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("closing resource failed", "error", err)
		}
	}
}

// buildServices opens storage and picks the recommendation source. Without
// an API key the catalog answers and no request leaves the machine.
func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	svc := &services{closers: []func() error{store.Close}}

	var sessionKV storage.KV = store
	if cfg.Storage.Backend == config.BackendRedis {
		rkv, err := storage.OpenRedis(ctx, cfg.Storage.RedisURL)
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.closers = append(svc.closers, rkv.Close)
		sessionKV = rkv
	}

	var (
		adv      api.Advisor
		analyzer advisor.PersonalityAnalyzer = advisor.StaticAnalyzer{}
		mode     = "online"
	)
	if cfg.Completion.Offline() {
		mode = "offline"
		printWarning("no completion API key: serving catalog recommendations (%s)", config.MissingKeyHint())
		adv = catalog.Advisor{}
	} else {
		client := completion.NewClient(completion.Options{
			APIKey:       cfg.Completion.APIKey,
			BaseURL:      cfg.Completion.BaseURL,
			Model:        cfg.Completion.Model,
			AuthStyle:    completion.AuthStyle(cfg.Completion.AuthStyle),
			RapidAPIHost: cfg.Completion.RapidAPIHost,
			Timeout:      cfg.Completion.Timeout,
		})
		gw := advisor.NewGateway(client, advisor.WithRunStore(store), advisor.WithNotifier(notify.Log{}))
		adv = gw
		if cfg.Personality.Analyzer == config.AnalyzerLLM {
			analyzer = advisor.NewLLMAnalyzer(gw)
		}
		slog.Info("completion service configured", "base_url", cfg.Completion.BaseURL, "model", client.Model())
	}

	svc.sessions = wizard.NewRegistry(sessionKV, wizard.WithIdleTimeout(cfg.Server.SessionIdle))
	svc.app = api.AppDeps{
		Sessions:         svc.sessions,
		Advisor:          adv,
		Analyzer:         analyzer,
		Shares:           store,
		Runs:             store,
		Mode:             mode,
		GatewayPerMinute: cfg.Limits.GatewayPerMinute,
	}
	svc.mcp = api.MCPDeps{Advisor: adv, Analyzer: analyzer}
	return svc, nil
}

func runServer(withMCP bool) error {
	fmt.Fprintf(os.Stderr, "compass version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Log.Level)})))

	// Refuse to start twice on the same port.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("compass is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("compass is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewAppHandler(svc.app),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		svc.sessions.RunEviction(gctx, cfg.Server.SessionIdle/2)
		return nil
	})
	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "compass listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if withMCP {
		stdioSrv := server.NewStdioServer(api.NewMCPServer(svc.mcp))
		g.Go(func() error {
			if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("MCP stdio server error", "error", err)
			}
			return nil
		})
		slog.Info("MCP server started (stdio transport)")
	}

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("compass is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop compass (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to compass (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		// Still show partial status even if config fails.
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	var st api.StatusResponse
	resp, err := client.Get(serverURL + "/status")
	switch {
	case err != nil:
		printStatus("Server", "stopped")
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		printStatus("Server", "error (HTTP %d)", resp.StatusCode)
	default:
		if decodeErr := json.NewDecoder(resp.Body).Decode(&st); decodeErr != nil {
			slog.Debug("decoding status failed", "error", decodeErr)
		}
		resp.Body.Close()
		printStatus("Server", "running on port %d (%s)", cfg.Server.Port, st.Mode)
		printStatus("Sessions", "%d", st.Sessions)
		if len(st.Runs) > 0 {
			printStatus("Gateway runs", "%s", formatRuns(st.Runs))
		}
	}

	if cfg.Completion.Offline() {
		printStatus("Completion", "not configured (catalog mode)")
	} else {
		printStatus("Completion", "%s via %s", cfg.Completion.Model, cfg.Completion.BaseURL)
	}
	printStatus("Storage", "%s", cfg.Storage.Backend)
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

// formatRuns renders run counts as "ok=3 transport_error=1", sorted by status.
func formatRuns(runs map[string]int) string {
	statuses := make([]string, 0, len(runs))
	for s := range runs {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = fmt.Sprintf("%s=%d", s, runs[s])
	}
	return strings.Join(parts, " ")
}
