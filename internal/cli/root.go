package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"crudconsole/internal/apiclient"
	"crudconsole/internal/config"
	"crudconsole/internal/format"
	"crudconsole/internal/logging"
	"crudconsole/internal/route"
	"crudconsole/internal/store"
	"crudconsole/internal/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type App struct {
	EnvFile  string
	BaseURL  string
	Timeout  time.Duration
	DataDir  string
	Format   string
	Pretty   bool
	LogFile  string
	LogLevel string
	Route    string

	format   format.Format
	log      *slog.Logger
	logClose io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:          "crudconsole",
		Short:        "Terminal console for the users and posts of a JSON demo API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive console where you left off
  crudconsole

  # Open a screen directly (shortcut for: crudconsole open /posts?userId=3)
  crudconsole /posts?userId=3

  # Scriptable commands
  crudconsole users list --search bret --format table
  crudconsole posts create --user 1 --title "Hello" --body "First post"

  # Work offline against the bundled mock API
  crudconsole mock-api --addr 127.0.0.1:8080 &
  crudconsole --base-url http://127.0.0.1:8080 users list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return cmd.Help()
			}
			r, err := app.startRoute()
			if err != nil {
				return writeErr(cmd, err)
			}
			return runTUI(app, r)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd.Flags())
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.EnvFile, "env-file", "", "Read settings from this .env file (default: ./.env if present)")
	pf.StringVar(&app.BaseURL, "base-url", defaults.BaseURL, "Base URL of the remote API")
	pf.DurationVar(&app.Timeout, "timeout", defaults.Timeout, "Per-request timeout (0: none)")
	pf.StringVar(&app.DataDir, "data-dir", defaults.DataDir, "Directory for the activity log and UI state (empty: disabled)")
	pf.StringVar(&app.Format, "format", defaults.Format, "Output format (json|edn|table)")
	pf.BoolVar(&app.Pretty, "pretty", defaults.Pretty, "Pretty-print JSON/EDN output")
	pf.StringVar(&app.LogFile, "log-file", defaults.LogFile, "Write logs to this file (default: logs are discarded)")
	pf.StringVar(&app.LogLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&app.Route, "route", "", "Screen to start on, e.g. /users (default: the last visited)")

	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newPostsCmd(app))
	cmd.AddCommand(newActivityCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newMockAPICmd(app))

	return cmd
}

// init merges defaults, .env, CRUDCONSOLE_* variables and flags, in that
// order of precedence (flags win).
func (app *App) init(flags *pflag.FlagSet) error {
	cfg, err := config.Load(app.EnvFile)
	if err != nil {
		return err
	}
	if !flags.Changed("base-url") {
		app.BaseURL = cfg.BaseURL
	}
	if !flags.Changed("timeout") {
		app.Timeout = cfg.Timeout
	}
	if !flags.Changed("data-dir") {
		app.DataDir = cfg.DataDir
	}
	if !flags.Changed("format") {
		app.Format = cfg.Format
	}
	if !flags.Changed("pretty") {
		app.Pretty = cfg.Pretty
	}
	if !flags.Changed("log-file") {
		app.LogFile = cfg.LogFile
	}
	if !flags.Changed("log-level") {
		app.LogLevel = cfg.LogLevel
	}

	f, err := format.Parse(app.Format)
	if err != nil {
		return err
	}
	app.format = f

	log, closer, err := logging.Open(app.LogFile, app.LogLevel)
	if err != nil {
		return err
	}
	app.log, app.logClose = log, closer
	return nil
}

func (app *App) close() {
	if app.logClose != nil {
		_ = app.logClose.Close()
		app.logClose = nil
	}
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return logging.Discard()
	}
	return app.log
}

func (app *App) client() *apiclient.Client {
	return apiclient.New(app.BaseURL,
		apiclient.WithTimeout(app.Timeout),
		apiclient.WithLogger(app.logger()),
	)
}

func (app *App) store() store.Store {
	return store.Store{Dir: strings.TrimSpace(app.DataDir)}
}

// startRoute is --route when given, otherwise the route saved by the last
// session, otherwise home.
func (app *App) startRoute() (route.Route, error) {
	if s := strings.TrimSpace(app.Route); s != "" {
		return route.Parse(s)
	}
	st, err := app.store().LoadTUIState()
	if err != nil || st.Route == "" {
		return route.Route{Kind: route.Home}, nil
	}
	r, err := route.Parse(st.Route)
	if err != nil {
		app.logger().Warn("ignoring saved route", "route", st.Route, "err", err)
		return route.Route{Kind: route.Home}, nil
	}
	return r, nil
}

func runTUI(app *App, r route.Route) error {
	app.logger().Info("starting console", "route", r.String(), "baseURL", app.BaseURL)
	return tui.Run(tui.Options{
		API:    app.client(),
		Store:  app.store(),
		Logger: app.logger(),
		Route:  r,
	})
}

// record appends a to the activity log. A failing log write is reported but
// does not fail the command.
func (app *App) record(ctx context.Context, a store.Activity) {
	if _, err := app.store().AppendActivity(ctx, a); err != nil {
		app.logger().Warn("record activity", "err", err)
	}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
