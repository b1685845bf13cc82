// Package main is the entry point for the chatwire chat client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/chatwire/auth"
	"github.com/dshills/chatwire/bot"
	"github.com/dshills/chatwire/client"
	"github.com/dshills/chatwire/config"
	"github.com/dshills/chatwire/connect"
	"github.com/dshills/chatwire/dispatch"
	"github.com/dshills/chatwire/internal/tui"
	"github.com/dshills/chatwire/logging"
	"github.com/dshills/chatwire/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	channels   string
	nick       string
	anonymous  bool
	logLevel   string
	headless   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := config.New(config.WithFile(opts.configPath))
	if err := cfg.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		return 1
	}

	useTUI := cfgBool(cfg, "ui.enabled", true) && !opts.headless

	// The TUI owns the terminal; log output would tear the screen apart.
	logOutput := io.Writer(os.Stderr)
	if useTUI {
		logOutput = io.Discard
	}
	level := cfgString(cfg, "logging.level", "info")
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Output: logOutput,
		Prefix: "chatwire",
	})

	if opts.configPath != "" {
		cfg.OnReload(func(_, _ map[string]any) {
			if lvl, err := cfg.GetString("logging.level"); err == nil {
				log.SetLevel(logging.ParseLevel(lvl))
			}
		})
		if err := cfg.Watch(); err != nil {
			log.Warn("config watch unavailable: %v", err)
		}
		defer cfg.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	channels := cfgStrings(cfg, "bot.channels")
	if opts.channels != "" {
		for _, ch := range strings.Split(opts.channels, ",") {
			if ch = strings.TrimSpace(ch); ch != "" {
				channels = append(channels, ch)
			}
		}
	}

	creds := credentials(cfg, opts, log)

	d := dispatch.New(dispatch.WithLogger(log))
	c := client.New(connector(cfg),
		client.WithLogger(log),
		client.WithDispatcher(d),
		client.WithCredentials(creds),
		client.WithChannels(channels...),
		client.WithCapabilities(cfgStrings(cfg, "capabilities")...),
		client.WithActivityWindow(cfgDuration(cfg, "timeouts.activityWindow", client.DefaultActivityWindow)),
		client.WithProbeWindow(cfgDuration(cfg, "timeouts.probeWindow", client.DefaultProbeWindow)),
	)

	b := bot.New(c, d,
		bot.WithPrefix(cfgString(cfg, "bot.commandPrefix", bot.DefaultPrefix)),
		bot.WithLogger(log),
	)
	if dir := cfgString(cfg, "bot.scriptDir", ""); dir != "" {
		host := script.NewHost(c, script.WithLogger(log))
		defer host.Close()

		handlers, err := host.LoadDir(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading scripts: %v\n", err)
			return 1
		}
		for name, h := range handlers {
			b.Handle(name, h)
		}
		log.Info("loaded %d script commands from %s", len(handlers), dir)
	}
	if err := b.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: starting bot: %v\n", err)
		return 1
	}
	defer b.Stop()

	policy := retryPolicy(cfgString(cfg, "retry.policy", "always"))
	backoff := client.Backoff{
		Initial:    cfgDuration(cfg, "retry.initialDelay", client.DefaultBackoff().Initial),
		Limit:      cfgDuration(cfg, "retry.maxDelay", client.DefaultBackoff().Limit),
		Multiplier: cfgFloat(cfg, "retry.multiplier", client.DefaultBackoff().Multiplier),
	}

	if !useTUI {
		status, err := client.Reconnect(ctx, c, policy, backoff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: session ended: %v\n", err)
			return 1
		}
		log.Info("final session status: %s", status)
		return 0
	}

	title := "chatwire"
	if len(channels) > 0 {
		title = strings.Join(channels, " ")
	}
	view, err := tui.New(d, tui.WithLogger(log), tui.WithTitle(title))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal view: %v\n", err)
		return 1
	}

	// The view owns the foreground; sessions reconnect in the background
	// until the user quits or the retry policy gives up.
	viewCtx, cancelView := context.WithCancel(ctx)
	defer cancelView()

	sessions := make(chan error, 1)
	go func() {
		_, err := client.Reconnect(viewCtx, c, policy, backoff)
		sessions <- err
		cancelView()
	}()

	if err := view.Run(viewCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: terminal view: %v\n", err)
		return 1
	}
	cancelView()

	if err := <-sessions; err != nil {
		fmt.Fprintf(os.Stderr, "Error: session ended: %v\n", err)
		return 1
	}
	return 0
}

// credentials picks the login source: the -anonymous flag wins, then a
// configured nick with its token from file or environment, then a fresh
// anonymous login.
func credentials(cfg *config.Config, opts options, log *logging.Logger) client.CredentialSource {
	if opts.anonymous {
		return auth.Anonymous()
	}

	nick := opts.nick
	if nick == "" {
		nick = cfgString(cfg, "connection.nick", "")
	}
	if nick == "" {
		return auth.Anonymous()
	}

	token := ""
	if path := cfgString(cfg, "connection.tokenFile", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("token file %s unreadable: %v", path, err)
		} else {
			token = strings.TrimSpace(string(data))
		}
	}
	if token == "" {
		token = os.Getenv(cfgString(cfg, "connection.tokenEnv", auth.DefaultTokenVar))
	}
	if token == "" {
		log.Warn("no token for %s; the server will reject registration", nick)
	}
	return auth.Static{Login: nick, Token: token}
}

// connector builds the transport from the connection settings.
func connector(cfg *config.Config) connect.Connector {
	addr := cfgString(cfg, "connection.address", connect.DefaultSecureAddr)
	dial := cfgDuration(cfg, "timeouts.dial", 0)
	if cfgBool(cfg, "connection.tls", true) {
		return connect.TLS{Addr: addr, Timeout: dial}
	}
	return connect.TCP{Addr: addr, Timeout: dial}
}

// retryPolicy maps the configured policy name to its implementation.
func retryPolicy(name string) client.RetryPolicy {
	switch name {
	case "timeout":
		return client.RetryOnTimeout
	case "error":
		return client.RetryOnError
	case "never":
		return func(client.Status, error) bool { return false }
	default:
		return client.RetryAlways
	}
}

func cfgString(cfg *config.Config, key, fallback string) string {
	if v, err := cfg.GetString(key); err == nil {
		return v
	}
	return fallback
}

func cfgBool(cfg *config.Config, key string, fallback bool) bool {
	if v, err := cfg.GetBool(key); err == nil {
		return v
	}
	return fallback
}

func cfgFloat(cfg *config.Config, key string, fallback float64) float64 {
	if v, err := cfg.GetFloat(key); err == nil {
		return v
	}
	return fallback
}

func cfgDuration(cfg *config.Config, key string, fallback time.Duration) time.Duration {
	if v, err := cfg.GetDuration(key); err == nil {
		return v
	}
	return fallback
}

func cfgStrings(cfg *config.Config, key string) []string {
	v, err := cfg.GetStringSlice(key)
	if err != nil {
		return nil
	}
	return v
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.channels, "channel", "", "Channel(s) to join, comma separated")
	flag.StringVar(&opts.nick, "nick", "", "Login to authenticate as")
	flag.BoolVar(&opts.anonymous, "anonymous", false, "Connect read-only without credentials")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without the terminal view")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "chatwire - Twitch chat client and bot host\n\n")
		fmt.Fprintf(os.Stderr, "Usage: chatwire [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chatwire -anonymous -channel somechannel      Watch a channel\n")
		fmt.Fprintf(os.Stderr, "  chatwire -c bot.toml -headless                Run a configured bot\n")
		fmt.Fprintf(os.Stderr, "  CHATWIRE_TOKEN=... chatwire -nick mybot -channel mychan\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("chatwire %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error", "off":
			// Valid.
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error, or off)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}
