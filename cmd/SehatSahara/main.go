// Command SehatSahara runs the multilingual health assistant: the HTTP API,
// and optionally the Twilio and WhatsApp chat channels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BTreeMap/SehatSahara/internal/api"
	"github.com/BTreeMap/SehatSahara/internal/assistant"
	"github.com/BTreeMap/SehatSahara/internal/genai"
	"github.com/BTreeMap/SehatSahara/internal/lockfile"
	"github.com/BTreeMap/SehatSahara/internal/messaging"
	"github.com/BTreeMap/SehatSahara/internal/nlu"
	"github.com/BTreeMap/SehatSahara/internal/store"
	"github.com/BTreeMap/SehatSahara/internal/twiliowhatsapp"
	"github.com/BTreeMap/SehatSahara/internal/util"
	"github.com/BTreeMap/SehatSahara/internal/whatsapp"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for SehatSahara state data
	DefaultStateDir = "/var/lib/sehatsahara"
	// DefaultAppDBFileName is the default SQLite database filename for conversation state
	DefaultAppDBFileName = "sehatsahara.db"
	// DefaultWhatsAppDBFileName is the default SQLite database filename for the WhatsApp device store
	DefaultWhatsAppDBFileName = "whatsmeow.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags, err := parseCommandLineFlags(config, os.Args[1:])
	if err != nil {
		slog.Error("Failed to parse flags", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping SehatSahara", "state_dir", flags.StateDir, "api_addr", flags.APIAddr)
	if err := run(ctx, flags); err != nil {
		slog.Error("SehatSahara failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("SehatSahara exited successfully")
}

// Config holds environment configuration
type Config struct {
	StateDir            string
	DatabaseDSN         string
	WhatsAppDBDSN       string
	APIAddr             string
	OpenAIKey           string
	OpenAIModel         string
	GenAIDebug          bool
	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioFromNumber    string
	TwilioWebhookURL    string
	WhatsAppEnabled     bool
	MaxExchanges        int
	ConfidenceThreshold float64
}

// Flags holds the effective configuration after command line overrides.
type Flags struct {
	Config
	QROutput    string
	NumericCode bool
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		StateDir:            os.Getenv("SEHAT_STATE_DIR"),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		WhatsAppDBDSN:       os.Getenv("WHATSAPP_DB_DSN"),
		APIAddr:             os.Getenv("API_ADDR"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         os.Getenv("OPENAI_MODEL"),
		GenAIDebug:          util.ParseBoolEnv("GENAI_DEBUG", false),
		TwilioAccountSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:     os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:    os.Getenv("TWILIO_FROM_NUMBER"),
		TwilioWebhookURL:    os.Getenv("TWILIO_WEBHOOK_URL"),
		WhatsAppEnabled:     util.ParseBoolEnv("WHATSAPP_ENABLED", false),
		MaxExchanges:        util.ParseIntEnv("TRIAGE_MAX_EXCHANGES", 0),
		ConfidenceThreshold: util.ParseFloatEnv("NLU_CONFIDENCE_THRESHOLD", 0),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No SEHAT_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// DATABASE_DSN takes precedence over DATABASE_URL
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = os.Getenv("DATABASE_URL")
	}
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = filepath.Join(config.StateDir, DefaultAppDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseDSN)
	}
	if config.WhatsAppDBDSN == "" {
		config.WhatsAppDBDSN = defaultWhatsAppDSN(config.StateDir)
	}

	slog.Debug("environment variables loaded",
		"SEHAT_STATE_DIR", config.StateDir,
		"DATABASE_DSN_SET", config.DatabaseDSN != "",
		"API_ADDR", config.APIAddr,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"TWILIO_ACCOUNT_SID_SET", config.TwilioAccountSID != "",
		"WHATSAPP_ENABLED", config.WhatsAppEnabled,
		"TRIAGE_MAX_EXCHANGES", config.MaxExchanges,
		"NLU_CONFIDENCE_THRESHOLD", config.ConfidenceThreshold)

	return config
}

func defaultWhatsAppDSN(stateDir string) string {
	return "file:" + filepath.Join(stateDir, DefaultWhatsAppDBFileName) + "?_foreign_keys=on"
}

// parseCommandLineFlags parses args with environment defaults. Database paths
// that were derived from the state directory follow a -state-dir override.
func parseCommandLineFlags(config Config, args []string) (Flags, error) {
	f := Flags{Config: config}
	fs := flag.NewFlagSet("SehatSahara", flag.ContinueOnError)
	fs.StringVar(&f.QROutput, "qr-output", "", "path to write the WhatsApp login QR code")
	fs.BoolVar(&f.NumericCode, "numeric-code", false, "print the raw WhatsApp pairing code instead of a QR code")
	fs.StringVar(&f.StateDir, "state-dir", config.StateDir, "state directory (overrides $SEHAT_STATE_DIR)")
	fs.StringVar(&f.DatabaseDSN, "db-dsn", config.DatabaseDSN, "conversation database DSN (overrides $DATABASE_DSN or $DATABASE_URL)")
	fs.StringVar(&f.WhatsAppDBDSN, "whatsapp-db-dsn", config.WhatsAppDBDSN, "WhatsApp device database DSN (overrides $WHATSAPP_DB_DSN)")
	fs.StringVar(&f.APIAddr, "api-addr", config.APIAddr, "API server address (overrides $API_ADDR)")
	fs.StringVar(&f.OpenAIKey, "openai-api-key", config.OpenAIKey, "OpenAI API key enabling model-based classification (overrides $OPENAI_API_KEY)")
	fs.StringVar(&f.OpenAIModel, "openai-model", config.OpenAIModel, "OpenAI model (overrides $OPENAI_MODEL)")
	fs.BoolVar(&f.WhatsAppEnabled, "whatsapp", config.WhatsAppEnabled, "connect a WhatsApp account directly (overrides $WHATSAPP_ENABLED)")
	fs.IntVar(&f.MaxExchanges, "triage-max-exchanges", config.MaxExchanges, "symptom exchanges before recommending a doctor (overrides $TRIAGE_MAX_EXCHANGES)")
	fs.Float64Var(&f.ConfidenceThreshold, "nlu-confidence-threshold", config.ConfidenceThreshold, "minimum NLU confidence (overrides $NLU_CONFIDENCE_THRESHOLD)")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if f.ConfidenceThreshold < 0 || f.ConfidenceThreshold > 1 {
		return Flags{}, fmt.Errorf("nlu-confidence-threshold must be between 0 and 1, got %v", f.ConfidenceThreshold)
	}

	if f.StateDir != config.StateDir {
		if f.DatabaseDSN == filepath.Join(config.StateDir, DefaultAppDBFileName) {
			f.DatabaseDSN = filepath.Join(f.StateDir, DefaultAppDBFileName)
			slog.Debug("Updated database DSN based on state directory", "state_dir", f.StateDir)
		}
		if f.WhatsAppDBDSN == defaultWhatsAppDSN(config.StateDir) {
			f.WhatsAppDBDSN = defaultWhatsAppDSN(f.StateDir)
		}
	}

	slog.Debug("flags parsed",
		"state_dir", f.StateDir,
		"db_dsn_set", f.DatabaseDSN != "",
		"api_addr", f.APIAddr,
		"whatsapp", f.WhatsAppEnabled,
		"qr_output", f.QROutput,
		"numeric_code", f.NumericCode)
	return f, nil
}

// ensureDirectoriesExist creates the state directory and, for file-based
// databases, the database's parent directory.
func ensureDirectoriesExist(flags Flags) error {
	dirs := []string{flags.StateDir}
	if store.DetectDSNType(flags.DatabaseDSN) == store.DSNTypeSQLite {
		dirs = append(dirs, filepath.Dir(flags.DatabaseDSN))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func buildEngineOptions(flags Flags, st store.ConversationStore) []assistant.Option {
	opts := []assistant.Option{assistant.WithStore(st)}
	if flags.MaxExchanges > 0 {
		opts = append(opts, assistant.WithMaxExchanges(flags.MaxExchanges))
	}
	if flags.ConfidenceThreshold > 0 {
		opts = append(opts, assistant.WithConfidenceThreshold(flags.ConfidenceThreshold))
	}
	return opts
}

func buildGenAIOptions(flags Flags) []genai.Option {
	opts := []genai.Option{genai.WithAPIKey(flags.OpenAIKey)}
	if flags.OpenAIModel != "" {
		opts = append(opts, genai.WithModel(flags.OpenAIModel))
	}
	if flags.GenAIDebug {
		opts = append(opts, genai.WithDebugMode(flags.StateDir))
	}
	return opts
}

func buildWhatsAppOptions(flags Flags) []whatsapp.Option {
	opts := []whatsapp.Option{whatsapp.WithDBDSN(flags.WhatsAppDBDSN)}
	if flags.QROutput != "" {
		opts = append(opts, whatsapp.WithQRCodeOutput(flags.QROutput))
	}
	if flags.NumericCode {
		opts = append(opts, whatsapp.WithNumericCode())
	}
	return opts
}

func twilioConfigured(flags Flags) bool {
	return flags.TwilioAccountSID != "" && flags.TwilioAuthToken != "" && flags.TwilioFromNumber != ""
}

// buildClassifier uses the OpenAI classifier when a key is configured and the
// keyword classifier otherwise.
func buildClassifier(flags Flags) (nlu.Classifier, error) {
	if flags.OpenAIKey == "" {
		slog.Info("No OpenAI API key configured, using keyword classifier")
		return nlu.NewKeywordClassifier(), nil
	}
	client, err := genai.NewClient(buildGenAIOptions(flags)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	slog.Info("Using OpenAI classifier", "model", client.Model())
	return nlu.NewOpenAIClassifier(client, nil), nil
}

func run(ctx context.Context, flags Flags) error {
	if err := ensureDirectoriesExist(flags); err != nil {
		return err
	}
	lock, err := lockfile.AcquireLock(flags.StateDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	st, err := store.Open(flags.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	engine := assistant.NewEngine(buildEngineOptions(flags, st)...)
	classifier, err := buildClassifier(flags)
	if err != nil {
		return err
	}

	apiOpts := []api.Option{api.WithClassifier(classifier)}
	if flags.APIAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(flags.APIAddr))
	}

	var services []messaging.Service
	if twilioConfigured(flags) {
		client, err := twiliowhatsapp.NewClient(
			twiliowhatsapp.WithAccountSID(flags.TwilioAccountSID),
			twiliowhatsapp.WithAuthToken(flags.TwilioAuthToken),
			twiliowhatsapp.WithFromWhats(flags.TwilioFromNumber),
		)
		if err != nil {
			return fmt.Errorf("failed to create Twilio client: %w", err)
		}
		var twOpts []messaging.TwilioOption
		if flags.TwilioWebhookURL != "" {
			twOpts = append(twOpts, messaging.WithWebhookValidation(flags.TwilioAuthToken, flags.TwilioWebhookURL))
		}
		svc := messaging.NewTwilioService(client, twOpts...)
		apiOpts = append(apiOpts, api.WithTwilioWebhook(svc.TwilioWebhookHandler))
		services = append(services, svc)
	}
	if flags.WhatsAppEnabled {
		client, err := whatsapp.NewClient(ctx, buildWhatsAppOptions(flags)...)
		if err != nil {
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		defer client.Close()
		services = append(services, messaging.NewWhatsAppService(client))
	}

	g, gctx := errgroup.WithContext(ctx)
	server := api.NewServer(engine, apiOpts...)
	g.Go(func() error { return server.Run(gctx) })
	for _, svc := range services {
		if err := runChannel(gctx, g, engine, svc, st); err != nil {
			return err
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runChannel starts svc and supervises its inbound loop, receipt drain and
// shutdown in g.
func runChannel(ctx context.Context, g *errgroup.Group, engine *assistant.Engine, svc messaging.Service, dedup store.DedupRepo) error {
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start messaging service: %w", err)
	}
	handler := messaging.NewResponseHandler(engine, svc, messaging.WithDedup(dedup))
	g.Go(func() error { return handler.Start(ctx) })
	g.Go(func() error {
		for receipt := range svc.Receipts() {
			slog.Debug("Message receipt", "to", receipt.To, "status", receipt.Status)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return svc.Stop()
	})
	return nil
}
