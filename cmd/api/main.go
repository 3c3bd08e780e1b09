// ABOUTME: Main entry point for the KVK Insights API server and command line tools
// ABOUTME: Wires together all components; serve starts HTTP, lookup and salary run once

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/jawher/mow.cli"

	"kvk-insights-api/api"
	"kvk-insights-api/api/handlers"
	"kvk-insights-api/api/middleware"
	"kvk-insights-api/core/domain"
	httpInfra "kvk-insights-api/infrastructure/http/standard"
	logrusLogger "kvk-insights-api/infrastructure/logger/logrus"
	"kvk-insights-api/kvkinsights"
	"kvk-insights-api/pkg/config"
	"kvk-insights-api/pkg/featureflags"
)

const (
	version        = "1.0.0"
	purgeInterval  = 5 * time.Minute
	shutdownPeriod = 30 * time.Second
)

func main() {
	app := cli.App("kvk-insights", "Company lookups in the Dutch business registry and a net salary calculator")
	app.Version("v version", version)

	logLevel := app.String(cli.StringOpt{
		Name:   "log-level",
		Value:  "",
		Desc:   "Log level (debug, info, warn, error)",
		EnvVar: "LOG_LEVEL",
	})

	app.Command("serve", "Start the HTTP API", func(cmd *cli.Cmd) {
		port := cmd.String(cli.StringOpt{
			Name:   "port p",
			Value:  "",
			Desc:   "Port to listen on",
			EnvVar: "PORT",
		})
		cmd.Action = func() {
			cfg, logger := mustSetup(*logLevel)
			defer logger.Close()
			if *port != "" {
				cfg.Server.Port = *port
			}
			if err := serve(cfg, logger); err != nil {
				logger.Error("Server stopped with error", map[string]interface{}{"error": err.Error()})
				cli.Exit(1)
			}
		}
	})

	app.Command("lookup", "Print the full profile of one company as JSON", func(cmd *cli.Cmd) {
		cmd.Spec = "[OPTIONS] KVK"
		kvkNumber := cmd.StringArg("KVK", "", "8 digit registration number")
		noAI := cmd.BoolOpt("no-ai", false, "Skip the narrative analysis")
		cmd.Action = func() {
			cfg, logger := mustSetup(*logLevel)
			defer logger.Close()
			if err := lookup(cfg, logger, *kvkNumber, !*noAI); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cli.Exit(1)
			}
		}
	})

	app.Command("salary", "Print a net salary breakdown as JSON", func(cmd *cli.Cmd) {
		cmd.Spec = "[OPTIONS] AMOUNT"
		amount := cmd.Float64Arg("AMOUNT", 0, "Salary amount in euros")
		period := cmd.StringOpt("period", string(domain.PeriodYear), "year, month, week or hour")
		year := cmd.IntOpt("year", 0, "Tax year; defaults to the latest supported")
		holiday := cmd.StringOpt("holiday", string(domain.HolidayAdded), "Holiday allowance: added, included or none")
		thirty := cmd.BoolOpt("thirty", false, "Apply the 30% ruling")
		net := cmd.BoolOpt("net", false, "AMOUNT is net; solve for gross")
		cmd.Action = func() {
			input := domain.SalaryInput{
				Amount:           *amount,
				AmountType:       domain.AmountGross,
				Period:           domain.Period(*period),
				TaxYear:          *year,
				HolidayAllowance: domain.HolidayAllowance(*holiday),
				ThirtyPercent:    *thirty,
			}
			if *net {
				input.AmountType = domain.AmountNet
			}
			if err := calculateSalary(input); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cli.Exit(1)
			}
		}
	})

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mustSetup loads and validates the configuration and creates the logger
func mustSetup(levelOverride string) (*config.Config, *logrusLogger.Logger) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		cli.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		cli.Exit(1)
	}
	if levelOverride != "" {
		cfg.Log.Level = levelOverride
	}

	logger := logrusLogger.New(logrusLogger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	return cfg, logger
}

// newClient builds the library client with upstream calls logged per request
func newClient(cfg *config.Config, logger *logrusLogger.Logger) (*kvkinsights.Client, error) {
	timeout := cfg.Timeouts.Narrative
	if cfg.Timeouts.Source > timeout {
		timeout = cfg.Timeouts.Source
	}
	httpClient := httpInfra.NewStandardHTTPClient(timeout,
		httpInfra.WithLogger(logger),
		httpInfra.WithTransport(&middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}),
	)

	return kvkinsights.NewClient(
		kvkinsights.WithSettings(cfg),
		kvkinsights.WithLogger(logger),
		kvkinsights.WithHTTPClient(httpClient),
	)
}

func serve(cfg *config.Config, logger *logrusLogger.Logger) error {
	logger.Info("Starting KVK Insights API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"version":    version,
	})

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	flags := featureflags.NewEnvManager("FEATURE_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go client.RunPurger(ctx, purgeInterval)

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:            logger,
		Flags:             flags,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		Stop:              ctx.Done(),
	})

	handlers.NewKvkHandler(client.Resolver(), client.Unlock()).RegisterRoutes(humaAPI)
	handlers.NewSalaryHandler(client.Calculator()).RegisterRoutes(humaAPI)
	handlers.NewChatHandler(client.ChatCompleter()).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(version, flags, client.Metrics()).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Timeouts.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped", nil)
	return nil
}

func lookup(cfg *config.Config, logger *logrusLogger.Logger, kvkNumber string, withAI bool) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	enrichments := domain.AllEnrichments()
	enrichments.AIAnalysis = withAI

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.WriteTimeout())
	defer cancel()

	profile, err := client.Profile(ctx, kvkNumber, domain.AllSections(), enrichments)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func calculateSalary(input domain.SalaryInput) error {
	client, err := kvkinsights.NewClient(kvkinsights.WithQuietMode())
	if err != nil {
		return err
	}
	defer client.Close()

	breakdown, err := client.CalculateSalary(input)
	if err != nil {
		return err
	}
	return printJSON(breakdown)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
