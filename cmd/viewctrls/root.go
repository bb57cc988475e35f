package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jask/viewctrls/internal/config"
	"github.com/jask/viewctrls/internal/database"
	"github.com/jask/viewctrls/internal/database/repository"
	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/logging"
	"github.com/jask/viewctrls/internal/manifest"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// app is the state shared by every command.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string
	setName   string

	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "viewctrls",
		Short:         "Declarative clickable controls for a container element",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $VIEWCTRLS_CONFIG or ~/.config/viewctrls/config.toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		a.runCmd(),
		a.htmlCmd(),
		a.validateCmd(),
		a.importCmd(),
		a.setsCmd(),
		a.exportCmd(),
		a.deleteCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. Flags win over config.
func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	return a.setLogger(a.errOut)
}

func (a *app) setLogger(w io.Writer) error {
	logger, err := logging.New(a.cfg.Log.Level, a.cfg.Log.Format, w)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	a.logger = logger
	return nil
}

// addSetFlag registers --set on commands that can read a stored set.
func (a *app) addSetFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.setName, "set", "", "load the named control set from the database instead of a manifest")
}

func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.Setup(ctx, a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database %s: %w", a.cfg.Database.Path, err)
	}
	return db, nil
}

// document loads the control set named by --set, the manifest argument or
// the configured manifest path, in that order.
func (a *app) document(ctx context.Context, args []string) (*manifest.Document, string, error) {
	if a.setName != "" {
		db, err := a.openDB(ctx)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()
		set, err := repository.NewControlSetRepo(db).ByName(ctx, a.setName)
		if err != nil {
			return nil, "", fmt.Errorf("load set %q: %w", a.setName, err)
		}
		if set == nil {
			return nil, "", &ExitError{Code: 1, Err: fmt.Errorf("no control set named %q", a.setName)}
		}
		return set.Document, "set " + a.setName, nil
	}

	path := a.cfg.Manifest.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, "", &ExitError{Code: 2, Err: fmt.Errorf("no manifest given (pass a path, --set or configure manifest.path)")}
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

// options resolves doc's handler names against the built-in registry.
func (a *app) options(doc *manifest.Document) (viewctrls.Options, error) {
	reg := handlers.NewWithBuiltins(a.logger)
	opts, err := doc.Options(reg, a.cfg.Defaults())
	if err != nil {
		return viewctrls.Options{}, &ExitError{Code: 1, Err: err}
	}
	return opts, nil
}

// validate initializes opts on a scratch container and returns its keys.
func (a *app) validate(opts viewctrls.Options) ([]string, error) {
	inst, err := viewctrls.New(nil, viewctrls.WithLogger(a.logger)).Initialize(dom.New("div"), opts)
	if err != nil {
		return nil, err
	}
	return inst.Keys(), nil
}
