// Chemdata MCP Server - A Model Context Protocol server for chemistry and
// biology data services: protein structures, compounds, bioactivity,
// target-disease evidence, patents and drugs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/olgasafonova/chemdata-mcp-server/internal/chembl"
	"github.com/olgasafonova/chemdata-mcp-server/internal/config"
	"github.com/olgasafonova/chemdata-mcp-server/internal/drugbank"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
	"github.com/olgasafonova/chemdata-mcp-server/internal/opentargets"
	"github.com/olgasafonova/chemdata-mcp-server/internal/pdb"
	"github.com/olgasafonova/chemdata-mcp-server/internal/pubchem"
	"github.com/olgasafonova/chemdata-mcp-server/internal/surechembl"
	"github.com/olgasafonova/chemdata-mcp-server/tools"
	"github.com/olgasafonova/chemdata-mcp-server/tracing"
)

const (
	ServerName    = "chemdata-mcp-server"
	ServerVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

const instructions = `Chemdata MCP Server provides read-only access to public chemistry and biology data services.

Services:
- RCSB PDB: structure search, entry info, coordinate downloads, quality metrics, ligands
- PubChem: compound search by name, SMILES, formula or CID
- ChEMBL: molecules, approved drugs, targets, bioactivities, assays, documents
- Open Targets: targets, diseases, drugs and their associations
- SureChEMBL: patents, patent chemistry annotations, chemicals, images, exports
- DrugBank: drugs, indications, categories, interactions (requires DRUGBANK_API_KEY)

Use detect_identifier when unsure which service accepts an ID.`

// options holds command-line overrides. Empty values keep the configured setting.
type options struct {
	transport  string
	addr       string
	configPath string
	services   string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           ServerName,
		Short:         "MCP server for chemistry and biology data services",
		Version:       ServerVersion,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "transport: stdio or http (default from config, stdio)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address for the http transport")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional YAML config file")
	cmd.PersistentFlags().StringVar(&opts.services, "services", "", "comma-separated services to enable")

	cmd.AddCommand(newToolsCommand(&opts))
	return cmd
}

func newToolsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools enabled by the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			return printTools(cmd.OutOrStdout(), cfg)
		},
	}
}

func printTools(out io.Writer, cfg *config.Config) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSERVICE\tCATEGORY\tTITLE")
	for _, spec := range tools.AllTools {
		if spec.Service != tools.ServiceUtility && !cfg.Enabled(spec.Service) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", spec.Name, spec.Service, spec.Category, spec.Title)
	}
	return tw.Flush()
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.transport != "" {
		cfg.Server.Transport = opts.transport
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.services != "" {
		cfg.Services = config.SplitList(opts.services)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := newLogger(os.Stderr, cfg.Logging.Level)
	defer recoverPanic(logger, "main")

	traceCfg := tracing.DefaultConfig()
	traceCfg.ServiceVersion = ServerVersion
	traceCfg.Backends = cfg.Services
	shutdownTracing, err := tracing.Setup(ctx, traceCfg)
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	server, names := newServer(cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Chemdata MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", cfg.Server.Transport,
		"services", cfg.Services,
		"tools", len(names),
	)

	if cfg.Server.Transport == config.TransportHTTP {
		return runHTTP(ctx, server, cfg, logger)
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// newServer creates the MCP server and registers the tools of every
// enabled service.
func newServer(cfg *config.Config, logger *slog.Logger) (*mcp.Server, []string) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions,
	})

	g := guard.New(
		guard.WithLogger(logger),
		guard.WithDefaultTimeout(cfg.Guard.Timeout),
		guard.WithMaxConcurrent(cfg.Guard.MaxConcurrent),
	)
	registry := tools.NewHandlerRegistry(buildClients(cfg, g, logger), logger)
	return server, registry.RegisterAll(server)
}

// buildClients creates one client per enabled service, all sharing g.
func buildClients(cfg *config.Config, g *guard.Guard, logger *slog.Logger) tools.Clients {
	var c tools.Clients
	b := cfg.Backends

	if cfg.Enabled(config.ServicePDB) {
		p := pdb.NewClient(g, pdb.WithDataURL(b.PDBData), pdb.WithLogger(logger))
		p.SetSearchURL(b.PDBSearch)
		p.SetFilesURL(b.PDBFiles)
		p.SequenceTimeout = cfg.Guard.SequenceTimeout
		c.PDB = p
	}
	if cfg.Enabled(config.ServicePubChem) {
		c.PubChem = pubchem.NewClient(g, pubchem.WithBaseURL(b.PubChem), pubchem.WithLogger(logger))
	}
	if cfg.Enabled(config.ServiceChEMBL) {
		c.ChEMBL = chembl.NewClient(g, chembl.WithBaseURL(b.ChEMBL), chembl.WithLogger(logger))
	}
	if cfg.Enabled(config.ServiceOpenTargets) {
		c.OpenTargets = opentargets.NewClient(g, opentargets.WithEndpoint(b.OpenTargets), opentargets.WithLogger(logger))
	}
	if cfg.Enabled(config.ServiceSureChEMBL) {
		c.SureChEMBL = surechembl.NewClient(g, surechembl.WithBaseURL(b.SureChEMBL), surechembl.WithLogger(logger))
	}
	if cfg.Enabled(config.ServiceDrugBank) {
		if cfg.DrugBank.APIKey == "" {
			logger.Warn("DRUGBANK_API_KEY not set, DrugBank tools will report a configuration error")
		}
		c.DrugBank = drugbank.NewClient(g, cfg.DrugBank.APIKey, drugbank.WithBaseURL(b.DrugBank), drugbank.WithLogger(logger))
	}
	return c
}

// newRouter builds the HTTP transport routes wrapped in the security middleware.
func newRouter(server *mcp.Server, cfg *config.Config, logger *slog.Logger) *SecurityMiddleware {
	r := chi.NewRouter()
	r.Use(requestMiddleware(logger))

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	getServer := func(*http.Request) *mcp.Server { return server }
	r.Handle("/mcp", mcp.NewStreamableHTTPHandler(getServer, nil))
	r.Handle("/sse", mcp.NewSSEHandler(getServer, nil))

	return NewSecurityMiddleware(r, logger, SecurityConfig{
		RateLimit:   cfg.Server.RateLimit,
		MaxBodySize: cfg.Server.MaxBodyBytes,
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": ServerName,
	})
}

// runHTTP serves the HTTP transport until ctx is cancelled, then shuts
// down gracefully.
func runHTTP(ctx context.Context, server *mcp.Server, cfg *config.Config, logger *slog.Logger) error {
	handler := newRouter(server, cfg, logger)
	defer handler.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http server")
		logger.Info("HTTP transport listening",
			"addr", cfg.Server.Addr,
			"mcp", "/mcp",
			"sse", "/sse",
			"health", "/health",
			"metrics", "/metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped gracefully")
	return nil
}
