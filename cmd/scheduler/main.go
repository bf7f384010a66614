// Command scheduler runs the curation pipeline on a cron schedule and posts
// a run summary to the configured notification webhooks. It also serves
// Prometheus metrics and a liveness endpoint.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"btc-curator/internal/config"
	"btc-curator/internal/infra/notifier"
	"btc-curator/internal/observability/metrics"
	pkgconfig "btc-curator/internal/pkg/config"
	"btc-curator/internal/usecase/curate"
)

const (
	defaultCronSchedule = "0 * * * *"
	defaultRunTimeout   = 15 * time.Minute
)

// schedulerConfig holds the cron-specific settings layered on top of the
// pipeline configuration.
type schedulerConfig struct {
	CronSchedule string
	Timezone     string
	RunTimeout   time.Duration
	DryRun       bool
}

func main() {
	logger := initLogger()

	cfg, warnings, err := config.Load()
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	schedCfg := loadSchedulerConfig(logger)
	logger.Info("scheduler configuration loaded",
		slog.String("cron_schedule", schedCfg.CronSchedule),
		slog.String("timezone", schedCfg.Timezone),
		slog.Duration("run_timeout", schedCfg.RunTimeout),
		slog.Bool("dry_run", schedCfg.DryRun))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, cleanup, err := buildService(ctx, logger, cfg, schedCfg.DryRun)
	if err != nil {
		logger.Error("startup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	notifiers := initNotifiers(logger)

	startMetricsServer(ctx, logger)
	startCronScheduler(logger, svc, schedCfg, notifiers)
}

// loadSchedulerConfig loads scheduler settings from the environment. Invalid
// values fall back to defaults with a warning rather than aborting startup.
func loadSchedulerConfig(logger *slog.Logger) schedulerConfig {
	scheduleResult := pkgconfig.LoadEnvWithFallback("CURATOR_CRON_SCHEDULE", defaultCronSchedule, pkgconfig.ValidateCronSchedule)
	for _, w := range scheduleResult.Warnings {
		logger.Warn(w)
	}

	timezoneResult := pkgconfig.LoadEnvWithFallback("CURATOR_TIMEZONE", "UTC", pkgconfig.ValidateTimezone)
	for _, w := range timezoneResult.Warnings {
		logger.Warn(w)
	}

	timeoutResult := pkgconfig.LoadEnvDuration("CURATOR_RUN_TIMEOUT", defaultRunTimeout, pkgconfig.ValidatePositiveDuration)
	for _, w := range timeoutResult.Warnings {
		logger.Warn(w)
	}

	dryRunResult := pkgconfig.LoadEnvBool("CURATOR_DRY_RUN", false)
	for _, w := range dryRunResult.Warnings {
		logger.Warn(w)
	}

	return schedulerConfig{
		CronSchedule: scheduleResult.Value.(string),
		Timezone:     timezoneResult.Value.(string),
		RunTimeout:   timeoutResult.Value.(time.Duration),
		DryRun:       dryRunResult.Value.(bool),
	}
}

// initNotifiers builds the set of enabled webhook notifiers.
func initNotifiers(logger *slog.Logger) []notifier.Notifier {
	var notifiers []notifier.Notifier

	slackConfig := loadSlackConfig(logger)
	if slackConfig.Enabled {
		notifiers = append(notifiers, notifier.NewSlackNotifier(slackConfig))
		logger.Info("Slack notifier initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Slack notifier disabled")
	}

	discordConfig := loadDiscordConfig(logger)
	if discordConfig.Enabled {
		notifiers = append(notifiers, notifier.NewDiscordNotifier(discordConfig))
		logger.Info("Discord notifier initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Discord notifier disabled")
	}

	return notifiers
}

// loadSlackConfig loads Slack webhook configuration from environment
// variables. A malformed webhook URL disables the notifier with a warning.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack notifications (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// loadDiscordConfig loads Discord webhook configuration from environment
// variables. A malformed webhook URL disables the notifier with a warning.
//
// Environment variables:
//   - DISCORD_ENABLED: Boolean flag to enable Discord notifications (default: false)
//   - DISCORD_WEBHOOK_URL: Discord webhook URL (required if enabled)
func loadDiscordConfig(logger *slog.Logger) notifier.DiscordConfig {
	enabled := os.Getenv("DISCORD_ENABLED") == "true"
	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")

	if !enabled {
		return notifier.DiscordConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Discord webhook URL is empty, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Discord webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Discord webhook URL must use HTTPS, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Host != "discord.com" {
		logger.Warn("Invalid Discord webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.DiscordConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/api/webhooks/") {
		logger.Warn("Invalid Discord webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.DiscordConfig{Enabled: false}
	}

	return notifier.DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronScheduler registers the curation job and blocks forever.
func startCronScheduler(logger *slog.Logger, svc *curate.Service, cfg schedulerConfig, notifiers []notifier.Notifier) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runCurationJob(logger, svc, cfg, notifiers)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	logger.Info("scheduler started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runCurationJob executes a single pipeline run with timeout, records job
// metrics, and notifies the configured webhooks with the run summary.
func runCurationJob(logger *slog.Logger, svc *curate.Service, cfg schedulerConfig, notifiers []notifier.Notifier) {
	metrics.RecordJobRun("started")
	logger.Info("curation run started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("curation run failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		return
	}
	metrics.RecordJobRun("success")

	logger.Info("curation run completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("new", stats.New),
		slog.Int("duplicates", stats.SkippedDuplicate),
		slog.Int("scored", stats.Scored),
		slog.Int("generated", stats.Generated),
		slog.Int("ready", stats.Ready),
		slog.Int("review", stats.Review),
		slog.Int("archive", stats.Archive),
		slog.Duration("duration", stats.Duration),
	)

	summary := notifier.RunSummary{
		Fetched:          stats.Fetched,
		New:              stats.New,
		SkippedDuplicate: stats.SkippedDuplicate,
		Scored:           stats.Scored,
		Generated:        stats.Generated,
		Ready:            stats.Ready,
		Review:           stats.Review,
		Archive:          stats.Archive,
		Duration:         stats.Duration,
		DryRun:           cfg.DryRun,
	}
	for _, n := range notifiers {
		if err := n.NotifyRunSummary(ctx, summary); err != nil {
			logger.Warn("run summary notification failed", slog.Any("error", err))
		}
	}
}
