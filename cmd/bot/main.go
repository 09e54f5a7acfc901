package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/jessevdk/go-flags"
	"github.com/pajlada/stupidmigration"

	colorcommands "github.com/Gumbachi/Vibrant-sub000/internal/commands/color"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/colors"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/configure"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/guildinfo"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/roleinfo"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/splash"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/themes"
	"github.com/Gumbachi/Vibrant-sub000/internal/config"
	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/logging"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
	"github.com/Gumbachi/Vibrant-sub000/internal/presets"
	"github.com/Gumbachi/Vibrant-sub000/internal/session"
	"github.com/Gumbachi/Vibrant-sub000/internal/slashcommands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
)

type options struct {
	EnvFile      string `long:"env-file" description:"Load environment variables from this file instead of .env"`
	Migrations   string `long:"migrations" default:"migrations" description:"Directory holding the postgres migrations"`
	KeepCommands bool   `long:"keep-commands" description:"Leave the slash commands registered on shutdown"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	sqlClient, err := openDatabase(cfg.SQLDriver, cfg.DSN, opts.Migrations)
	if err != nil {
		return err
	}
	defer sqlClient.Close()

	store, err := guilds.NewSQLStore(sqlClient, cfg.SQLDriver)
	if err != nil {
		return err
	}

	catalog, err := presets.Load()
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}

	bot, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}
	// rate limits are retried by the engine's bulk loops
	bot.ShouldRetryOnRateLimit = false
	bot.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	repo := guilds.NewRepository(store, guilds.RepositoryOptions{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		Defaults: guilds.Defaults{
			Prefix:     cfg.DefaultPrefix,
			ColorLimit: cfg.ColorLimit,
			ThemeLimit: cfg.ThemeLimit,
		},
		Logger: log,
	})
	sessions := session.NewRegistry(cfg.SessionLimit, cfg.SessionIdle)
	eng := engine.New(repo, platform.NewDiscord(bot), sessions, engine.Config{
		Throttle:          cfg.BulkDelay,
		RateLimitCooldown: cfg.RateLimitCooldown,
	}, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps := &commands.Deps{
		Ctx:           ctx,
		Engine:        eng,
		Presets:       catalog,
		PromptTimeout: cfg.PromptTimeout,
		Log:           log,
	}

	colorcommands.Register(deps)
	colors.Register(deps)
	splash.Register(deps)
	themes.Register(deps)
	configure.Register(deps)
	guildinfo.Register(deps)
	roleinfo.Register(deps)
	slashcommands.Initialize(deps)

	h := &handlers{deps: deps}
	bot.AddHandler(h.onMessage)
	bot.AddHandler(h.onMessageReactionAdded)
	bot.AddHandler(h.onMemberJoined)
	bot.AddHandler(h.onMemberLeft)
	bot.AddHandler(h.onMemberUpdated)
	bot.AddHandler(h.onRoleDeleted)
	bot.AddHandler(h.onGuildDeleted)

	// Open a websocket connection to Discord and begin listening.
	if err := bot.Open(); err != nil {
		return fmt.Errorf("opening connection: %w", err)
	}
	defer bot.Close()

	slashCommands := slashcommands.New(cfg.SlashCommandGuildIDs)
	if err := slashCommands.Create(bot); err != nil {
		log.Error("Unable to create slash commands", "error", err)
	}

	go startSweeperRunner(ctx, bot, deps)

	log.Info("Bot is now running. Press CTRL-C to exit.", "driver", cfg.SQLDriver, "presets", len(catalog.Themes()))
	<-ctx.Done()

	if !opts.KeepCommands {
		if err := slashCommands.Delete(bot); err != nil {
			log.Warn("Unable to delete slash commands", "error", err)
		}
	}

	return nil
}

func openDatabase(driver, dsn, migrations string) (*sql.DB, error) {
	sqlClient, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if err := sqlClient.Ping(); err != nil {
		sqlClient.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}

	if driver == guilds.DriverPostgres {
		if err := stupidmigration.Migrate(migrations, sqlClient); err != nil {
			sqlClient.Close()
			return nil, fmt.Errorf("running SQL migrations: %w", err)
		}
	}

	return sqlClient, nil
}
