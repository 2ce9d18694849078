package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ReliQuery/hyper-mcp/pkg/common"
	"github.com/ReliQuery/hyper-mcp/pkg/config"
	"github.com/ReliQuery/hyper-mcp/pkg/host"
	"github.com/ReliQuery/hyper-mcp/pkg/policy"
	"github.com/ReliQuery/hyper-mcp/plugins/rstime"
	"github.com/ReliQuery/hyper-mcp/plugins/wrapper"
)

func main() {
	configPath := flag.String("config", "hyper-mcp.yaml", "path to hyper-mcp configuration file")
	safeMode := flag.Bool("safe-mode", false, "run in read-only safe mode")
	transport := flag.String("transport", "stdio", "transport: stdio or sse")
	httpAddr := flag.String("http-addr", ":8080", "http listen address for sse transport")
	baseURL := flag.String("base-url", "", "base URL for sse endpoint (e.g. http://localhost:8080)")
	basePath := flag.String("base-path", "/mcp", "base path for sse endpoints")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if *safeMode {
		cfg.Server.SafeMode = true
	}
	configureLogging(cfg)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("config file not found, using defaults", "path", *configPath)
		} else {
			slog.Warn("failed to load config, using defaults", "path", *configPath, "error", err)
		}
	}
	if cfg.Server.SafeMode {
		slog.Warn("safe mode enabled (read-only)")
	}

	common.PrintBanner(cfg.Server.Version)

	registry := host.NewRegistry()
	registry.Register(rstime.PluginName, rstime.New(nil))
	registry.Register(wrapper.PluginName, wrapper.New())

	plugins, err := registry.Load(cfg)
	if err != nil {
		slog.Error("failed to load plugins", "error", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	toolPolicy := policy.New(cfg.Policy, cfg.Server.SafeMode)
	summaries := collectCapabilitySummaries(plugins, toolPolicy)
	registerCapabilities(s, plugins, toolPolicy)

	if strings.ToLower(*transport) == "sse" {
		startSSEServer(s, cfg.Server.Name, cfg.Server.Version, summaries, *httpAddr, *baseURL, *basePath)
		return
	}

	fmt.Fprintln(os.Stderr, "🔌 hyper-mcp is listening on stdio...")

	if err := server.ServeStdio(s); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) {
	level := parseLogLevel(cfg.Server.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type capabilityInventory struct {
	Server    string              `json:"server"`
	Version   string              `json:"version"`
	Transport string              `json:"transport"`
	Tools     []capabilitySummary `json:"tools"`
}

func startSSEServer(mcpServer *server.MCPServer, name, version string, tools []capabilitySummary, addr, baseURL, basePath string) {
	if baseURL == "" {
		baseURL = "http://localhost" + addr
	}

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURL),
		server.WithStaticBasePath(basePath),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithUseFullURLForMessageEndpoint(true),
		server.WithKeepAlive(true),
	)

	mux := http.NewServeMux()
	mux.Handle(basePath+"/sse", sseServer.SSEHandler())
	mux.Handle(basePath+"/message", sseServer.MessageHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/capabilities", func(w http.ResponseWriter, _ *http.Request) {
		payload := capabilityInventory{
			Server:    name,
			Version:   version,
			Transport: "sse",
			Tools:     tools,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	})

	slog.Info("starting sse server", "addr", addr, "baseURL", baseURL, "basePath", basePath)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("sse server error", "error", err)
		os.Exit(1)
	}
}

func confirmTool(plugin, tool string) bool {
	tty, err := os.OpenFile(filepath.Clean("/dev/tty"), os.O_RDWR, 0)
	if err != nil {
		slog.Warn("confirmation unavailable; denying tool", "plugin", plugin, "tool", tool, "error", err)
		return false
	}
	defer tty.Close()

	_, _ = fmt.Fprintf(tty, "Confirm execution of %s/%s [y/N]: ", plugin, tool)
	reader := bufio.NewReader(tty)
	line, _ := reader.ReadString('\n')
	response := strings.TrimSpace(strings.ToLower(line))
	return response == "y" || response == "yes"
}
