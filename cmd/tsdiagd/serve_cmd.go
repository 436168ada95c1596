package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/webtools-dev/tsdiag/internal/file"
	"github.com/webtools-dev/tsdiag/internal/filewatcher"
	"github.com/webtools-dev/tsdiag/internal/importmap"
	"github.com/webtools-dev/tsdiag/internal/node"
	"github.com/webtools-dev/tsdiag/internal/npm"
	"github.com/webtools-dev/tsdiag/internal/publish"
	"github.com/webtools-dev/tsdiag/internal/schedule"
	"github.com/webtools-dev/tsdiag/internal/store"
	"github.com/webtools-dev/tsdiag/internal/typecheck"
)

var serveFlags struct {
	root             string
	config           string
	lintConfig       string
	importMapPath    string
	typeCheckURL     string
	typeCheckToken   string
	npmManaged       bool
	batchNotify      bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the diagnostics engine against a workspace on disk",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.root, "root", ".", "workspace root to watch")
	serveCmd.Flags().StringVar(&serveFlags.config, "config", "", "path to YAML workspace settings")
	serveCmd.Flags().StringVar(&serveFlags.lintConfig, "lint-config", "", "path to TOML lint options")
	serveCmd.Flags().StringVar(&serveFlags.importMapPath, "import-map", "", "path to an import map JSON file")
	serveCmd.Flags().StringVar(&serveFlags.typeCheckURL, "typecheck-url", "http://127.0.0.1:8811/diagnostics", "external type-check service endpoint")
	serveCmd.Flags().StringVar(&serveFlags.typeCheckToken, "typecheck-token", "", "bearer token for the type-check service, if authenticated")
	serveCmd.Flags().BoolVar(&serveFlags.npmManaged, "npm-managed", true, "whether a managed node_modules cache backs npm: specifiers")
	serveCmd.Flags().BoolVar(&serveFlags.batchNotify, "batch-notifications", false, "log a line when each scheduled batch completes")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if serveFlags.batchNotify {
		os.Setenv("TSDIAG_DIAGNOSTIC_BATCH_NOTIFICATIONS", "1")
	}

	cfgSnapshot, err := loadSettings(serveFlags.config)
	if err != nil {
		return err
	}
	lintOpts, err := loadLintOptions(serveFlags.lintConfig)
	if err != nil {
		return err
	}

	var im *importmap.Map
	if serveFlags.importMapPath != "" {
		im, err = loadImportMap(serveFlags.importMapPath)
		if err != nil {
			return err
		}
	}

	var tokenSource oauth2.TokenSource
	if serveFlags.typeCheckToken != "" {
		tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: serveFlags.typeCheckToken})
	}

	ws := &workspace{
		root:             serveFlags.root,
		logger:           logger,
		docStore:         file.NewDiskStore(),
		config:           cfgSnapshot,
		lintOpts:         lintOpts,
		importMap:        im,
		npmRes:           npm.New(serveFlags.npmManaged),
		nodeBi:           node.New(),
		typecheckAdapter: typecheck.New(newHTTPTypeCheckClient(serveFlags.typeCheckURL, tokenSource)),
	}

	tsStore := store.NewTsDiagnosticsStore()
	client := newStdoutClient(logger)
	publisher := publish.New(client, store.NewDiagnosticsState())

	generators := schedule.Generators{
		TypeCheck: ws.generateTypeCheck,
		Module:    ws.generateModule,
		Lint:      ws.generateLint,
	}
	server := schedule.New(logger, generators, publisher, tsStore)
	if serveFlags.batchNotify {
		server.SetNotifier(client)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Start(ctx)
	defer server.Stop()

	triggerUpdate := func() {
		snap, err := ws.currentSnapshot(ctx)
		if err != nil {
			logger.Error("scanning workspace", "error", err)
			return
		}
		if err := server.SendUpdate(snap); err != nil {
			logger.Error("sending update", "error", err)
		}
	}
	triggerUpdate()

	watchPaths := watchedConfigPaths(serveFlags.config, serveFlags.lintConfig, serveFlags.importMapPath)
	if len(watchPaths) > 0 {
		watcher, err := filewatcher.New(watchPaths, 200*time.Millisecond, logger,
			func(events []filewatcher.Event) {
				logger.Info("config changed, rescanning", "count", len(events))
				triggerUpdate()
			},
			func(err error) { logger.Error("file watcher error", "error", err) },
		)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func watchedConfigPaths(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadImportMap(path string) (*importmap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return importmap.Parse(data)
}
