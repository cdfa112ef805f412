package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/designpatterns/internal/build"
	"github.com/shaharia-lab/designpatterns/internal/config"
	"github.com/shaharia-lab/designpatterns/internal/editor"
	"github.com/shaharia-lab/designpatterns/internal/eventbus"
	"github.com/shaharia-lab/designpatterns/internal/logger"
	"github.com/shaharia-lab/designpatterns/internal/metrics"
	"github.com/shaharia-lab/designpatterns/internal/notification"
	"github.com/shaharia-lab/designpatterns/internal/storage"
)

// Listener names accepted by --subscribe.
const (
	listenerLog     = "log"
	listenerEmail   = "email"
	listenerMetrics = "metrics"
)

type subscription struct {
	kind     eventbus.EventKind
	listener string
}

// defaultSubscriptions wires the log listener to open events, the email
// listener to save events and the event counter to everything.
var defaultSubscriptions = []subscription{
	{eventbus.Open, listenerLog},
	{eventbus.Saved, listenerEmail},
	{eventbus.Open, listenerMetrics},
	{eventbus.Saved, listenerMetrics},
}

// NewObserveCmd returns the "observe" subcommand, which opens and saves a
// file in an editor with listeners attached.
func NewObserveCmd(cfg *config.AppConfig) *cobra.Command {
	var (
		logFile    string
		email      string
		subscribes []string
	)

	cmd := &cobra.Command{
		Use:   "observe <path>",
		Short: "Open and save a file, notifying subscribed listeners",
		Long: `Open and save <path> in an editor. By default the log listener receives
open events, the email listener (when SMTP is configured) receives save
events, and an event counter receives both.

Use --subscribe kind=listener (repeatable) to choose the wiring explicitly.
Listeners: log, email, metrics. Kinds: open, saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("log-file") {
				cfg.EventLogFile = logFile
			}
			if cmd.Flags().Changed("email") {
				cfg.NotifyEmail = email
			}
			subs := defaultSubscriptions
			if len(subscribes) > 0 {
				var err error
				if subs, err = parseSubscriptions(subscribes); err != nil {
					return err
				}
			}
			return runObserve(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, subs, args[0])
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", cfg.EventLogFile, "File the log listener appends to (overrides EVENT_LOG_FILE)")
	cmd.Flags().StringVar(&email, "email", cfg.NotifyEmail, "Recipient for the email listener (overrides NOTIFY_EMAIL)")
	cmd.Flags().StringArrayVar(&subscribes, "subscribe", nil, "Subscription as kind=listener; replaces the default wiring")

	return cmd
}

func parseSubscriptions(values []string) ([]subscription, error) {
	subs := make([]subscription, 0, len(values))
	for _, v := range values {
		kindStr, name, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid subscription %q: want kind=listener", v)
		}
		kind, err := eventbus.ParseEventKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("invalid subscription %q: %w", v, err)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case listenerLog, listenerEmail, listenerMetrics:
		default:
			return nil, fmt.Errorf("invalid subscription %q: unknown listener %q", v, name)
		}
		subs = append(subs, subscription{kind: kind, listener: name})
	}
	return subs, nil
}

func runObserve(out, errOut io.Writer, cfg *config.AppConfig, subs []subscription, path string) error {
	sysLogger, closer, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	// The system log cannot report its own close failure.
	defer closeQuietly("system log", closer, logger.NewConsoleLogger(errOut, slog.LevelWarn))

	sysLogger.Info("observe starting",
		slog.String("path", path),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
	)

	listeners, cleanup, err := buildListeners(cfg, subs, sysLogger)
	defer cleanup()
	if err != nil {
		return err
	}

	ed := editor.New(sysLogger)
	for _, s := range subs {
		l, ok := listeners[s.listener]
		if !ok {
			fmt.Fprintf(out, "skipping %s listener for %s: not configured\n", s.listener, s.kind)
			continue
		}
		ed.Events().Subscribe(s.kind, l)
	}

	ed.OpenFile(path)
	ed.SaveFile()

	if counter, ok := listeners[listenerMetrics].(*metrics.EventCounter); ok {
		for _, k := range eventbus.Kinds() {
			fmt.Fprintf(out, "%s events: %.0f\n", k, counter.Count(k))
		}
	}
	if ll, ok := listeners[listenerLog].(*logger.LogListener); ok {
		fmt.Fprintf(out, "event log: %s\n", ll.Path())
	}
	return nil
}

// buildListeners constructs only the listeners named in subs. The email
// listener is omitted when no recipient or SMTP server is configured. The
// returned cleanup func is always safe to call.
func buildListeners(cfg *config.AppConfig, subs []subscription, sysLogger *slog.Logger) (map[string]eventbus.Listener, func(), error) {
	listeners := map[string]eventbus.Listener{}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	wanted := map[string]bool{}
	for _, s := range subs {
		wanted[s.listener] = true
	}

	if wanted[listenerLog] {
		ll, err := logger.NewLogListener(cfg.EventLogPath(), cfg.EventLogMaxSizeMB, sysLogger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("creating log listener: %w", err)
		}
		closers = append(closers, func() { closeQuietly("event log", ll, sysLogger) })
		listeners[listenerLog] = ll
	}

	if wanted[listenerMetrics] {
		counter, err := metrics.NewEventCounter(prometheus.NewRegistry())
		if err != nil {
			return nil, cleanup, err
		}
		listeners[listenerMetrics] = counter
	}

	if wanted[listenerEmail] {
		if !cfg.EmailEnabled() {
			sysLogger.Warn("email listener requested but SMTP or recipient not configured")
			return listeners, cleanup, nil
		}
		db, _, err := storage.NewSQLiteDB(cfg.DBPath())
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening notification log: %w", err)
		}
		closers = append(closers, func() { closeQuietly("database", db, sysLogger) })
		listeners[listenerEmail] = notification.NewEmailListener(
			cfg.NotifyEmail,
			notification.NewSMTPProvider(cfg.SMTPConfig()),
			notification.WithStore(storage.NewSQLiteNotificationStore(db)),
			notification.WithLogger(sysLogger),
		)
	}

	return listeners, cleanup, nil
}

// closeQuietly closes c and logs, rather than returns, any error.
func closeQuietly(name string, c io.Closer, log *slog.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("closing "+name, "error", err)
	}
}
