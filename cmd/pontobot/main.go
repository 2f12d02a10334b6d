package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/dmoreira/pontobot/internal/ai"
	"github.com/dmoreira/pontobot/internal/bot"
	"github.com/dmoreira/pontobot/internal/config"
	"github.com/dmoreira/pontobot/internal/evolution"
	"github.com/dmoreira/pontobot/internal/export"
	"github.com/dmoreira/pontobot/internal/punch"
	"github.com/dmoreira/pontobot/internal/server"
	"github.com/dmoreira/pontobot/internal/store"
	"github.com/dmoreira/pontobot/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "pontobot",
	Short: "WhatsApp time-clock bot",
	Long:  "pontobot records entrada/saída punches sent over WhatsApp and answers worked-hours reports.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	RunE:  runServe,
}

var reportCmd = &cobra.Command{
	Use:   "report [range in bot grammar]",
	Short: "Render a worked-hours report from the local store",
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export worked sessions as an iCalendar file",
	RunE:  runExport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace a user's punches with mock data for the last 7 days",
	RunE:  runSeed,
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive console running commands against the local store",
	RunE:  runConsole,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{reportCmd, exportCmd, seedCmd, consoleCmd} {
		cmd.Flags().String("user", "", "User id (phone number without the JID suffix)")
		cmd.MarkFlagRequired("user")
	}
	reportCmd.Flags().String("from", "", `Start day: DD/MM/AAAA or natural English ("3 days ago")`)
	reportCmd.Flags().String("to", "", "End day (inclusive), same formats as --from")
	exportCmd.Flags().String("from", "", "Start day, same formats as report")
	exportCmd.Flags().String("to", "", "End day (inclusive)")
	exportCmd.Flags().String("out", "", "Output file (default pontobot-<user>.ics)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, *time.Location, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Clock.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("loading timezone %q: %w", cfg.Clock.Timezone, err)
	}
	return cfg, loc, nil
}

func openStore(cfg *config.Config) (*store.DB, error) {
	path := cfg.Storage.Path
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Evolution.APIURL == "" || cfg.Evolution.APIKey == "" || cfg.Evolution.Instance == "" {
		return fmt.Errorf("evolution API not configured: run 'pontobot config' or set the EVOLUTION_* env vars")
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	handler := bot.NewHandler(db, loc, logger)
	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.enabled is set but no API key is configured")
		}
		handler.SetInterpreter(ai.NewOpenAI(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, logger))
	}

	client := evolution.NewClient(cfg.Evolution.APIURL, cfg.Evolution.APIKey, cfg.Evolution.Instance, logger)

	srv := server.NewServer(handler, client, logger)
	if cfg.Server.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	logger.Info("webhook server listening", "addr", cfg.Server.ListenAddr, "timezone", cfg.Clock.Timezone)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// parseDayFlag accepts the bot's DD/MM/AAAA form first and falls back to
// natural English ("yesterday", "3 days ago") for operator convenience.
func parseDayFlag(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("02/01/2006", s, loc); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, now.In(loc), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func resolveCLIRange(cmd *cobra.Command, args []string, now time.Time, loc *time.Location) (punch.Range, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	if from == "" && to == "" {
		return punch.ResolveRange(strings.Join(args, " "), now, loc)
	}
	if from == "" || to == "" {
		return punch.Range{}, fmt.Errorf("--from and --to must be given together")
	}

	start, err := parseDayFlag(from, now, loc)
	if err != nil {
		return punch.Range{}, err
	}
	end, err := parseDayFlag(to, now, loc)
	if err != nil {
		return punch.Range{}, err
	}
	if end.Before(start) {
		return punch.Range{}, fmt.Errorf("--to is before --from")
	}

	return punch.Range{
		Start: start,
		End:   end.AddDate(0, 0, 1),
		Label: start.Format("02/01/2006") + " a " + end.Format("02/01/2006"),
	}, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")

	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rng, err := resolveCLIRange(cmd, args, time.Now(), loc)
	if err != nil {
		return err
	}

	events, err := db.QueryPunches(cmd.Context(), user, rng.Start, rng.End)
	if err != nil {
		return fmt.Errorf("querying punches: %w", err)
	}
	if len(events) == 0 {
		fmt.Println(punch.NoRecordsMessage)
		return nil
	}

	fmt.Println(punch.BuildReport(events, loc).Render(rng))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = "pontobot-" + user + ".ics"
	}

	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rng, err := resolveCLIRange(cmd, args, time.Now(), loc)
	if err != nil {
		return err
	}

	events, err := db.QueryPunches(cmd.Context(), user, rng.Start, rng.End)
	if err != nil {
		return fmt.Errorf("querying punches: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	sessions := punch.Sessions(events, loc)
	if err := export.WriteICS(f, user, sessions, time.Now()); err != nil {
		os.Remove(out)
		return err
	}

	fmt.Printf("Wrote %d sessions (%s) to %s\n", len(sessions), rng.Label, out)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")

	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	handler := bot.NewHandler(db, loc, newLogger(cmd))
	if err := handler.SeedMockData(cmd.Context(), user); err != nil {
		return err
	}

	fmt.Printf("Seeded mock punches for %s. Try: pontobot report --user %s \"últimos 7 dias\"\n", user, user)
	return nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")

	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	handler := bot.NewHandler(db, loc, newLogger(cmd))

	console := tui.NewConsole(user, func(ctx context.Context, text string) string {
		return handler.Handle(ctx, user, text)
	})

	if _, err := tea.NewProgram(console).Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[server]
listen_addr = "%s"
metrics = %t

[evolution]
api_url = ""
api_key = ""
instance = ""

[clock]
timezone = "%s"

[storage]
path = ""

[ai]
enabled = %t
api_key = ""
base_url = ""
model = "%s"
`,
			cfg.Server.ListenAddr,
			cfg.Server.Metrics,
			cfg.Clock.Timezone,
			cfg.AI.Enabled,
			cfg.AI.Model,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
