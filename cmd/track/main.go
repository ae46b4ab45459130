package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"delhivery-tracker/internal/core/config"
	"delhivery-tracker/internal/core/console"
	"delhivery-tracker/internal/core/httpclient"
	"delhivery-tracker/internal/core/logger"
	trackingadapter "delhivery-tracker/internal/features/tracking/adapters"
	trackinghandler "delhivery-tracker/internal/features/tracking/handler"
	trackingservice "delhivery-tracker/internal/features/tracking/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// configDir is where the optional .env file is looked up.
const configDir = "."

// usageError marks argument and flag problems so they exit with exitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its outcome to a process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	console.New(stderr).Error(err)

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitFailure
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track <awb>",
		Short: "Track a Delhivery shipment by AWB number",
		Long: `Looks up one shipment on the Delhivery tracking API, prints a summary panel
and the scan history, and appends an entry to the tracking log.

Configuration is read from a .env file in the working directory and from the
environment (DELHIVERY_API_URL, HTTP_TIMEOUT, TRACKING_LOG_FILE,
DISPLAY_UTC_OFFSET, LOG_LEVEL, PROXY_*).`,
		Args:          awbArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(cmd.Context(), strings.TrimSpace(args[0]), cmd.OutOrStdout())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

// awbArgs requires exactly one non-blank AWB number.
func awbArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &usageError{err: err}
	}
	if strings.TrimSpace(args[0]) == "" {
		return &usageError{err: errors.New("AWB number must not be empty")}
	}
	return nil
}

// runTrack wires the components for one lookup and runs it.
func runTrack(ctx context.Context, awb string, stdout io.Writer) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	logger.With(zap.String("run_id", uuid.NewString()))
	l := logger.Get()

	zone, err := cfg.Display.Location()
	if err != nil {
		return err
	}

	l.Debug("Tracking shipment",
		zap.String("awb", awb),
		zap.String("api_url", cfg.Delhivery.APIURL),
		zap.String("tracking_log", cfg.Journal.Path),
		zap.Duration("timeout", cfg.Delhivery.Timeout),
	)

	client := httpclient.NewClient(cfg.Delhivery.Timeout, cfg.Proxy)
	provider := trackingadapter.NewDelhiveryAdapter(cfg.Delhivery, client)
	journal := trackingadapter.NewFileJournal(cfg.Journal.Path)
	presenter := trackinghandler.NewConsoleHandler(console.New(stdout))

	svc := trackingservice.NewTrackingService(provider, presenter, journal, zone)
	return svc.Track(ctx, awb)
}
