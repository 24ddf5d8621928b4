package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/spanview/spanview/internal/server"
	"github.com/spanview/spanview/pkg/graphio"
	"github.com/spanview/spanview/pkg/nav"
)

// newServeCmd creates the serve command, which serves a visualization
// session over HTTP with optional live reload of the snapshot file.
func newServeCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve <snapshot>",
		Short: "Serve a visualization session over HTTP",
		Long: `Serve loads a hypergraph snapshot and exposes it as a visualization
session: REST endpoints for the layout and per-node state, a focus endpoint
for navigation, and a WebSocket feed pushing state changes to renderers.

With --watch, the snapshot file is reloaded on change. A rewritten file that
fails validation is rejected and the previous layout keeps serving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			if addr == "" {
				addr = cfg.Server.Addr
			}

			snapshot, err := graphio.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}

			controller := nav.New(nil, nav.WithLogger(logger))
			built, err := controller.ReplaceSnapshot(ctx, snapshot)
			if err != nil {
				printError("snapshot rejected: %v", err)
				return err
			}
			printInfo("Serving %d nodes on http://%s", built.NodeCount(), addr)

			srv := server.New(controller, logger)

			if watch {
				debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
				stop, err := watchSnapshot(ctx, args[0], debounce, logger, func() {
					reloadSnapshot(ctx, args[0], controller, srv, logger)
				})
				if err != nil {
					return err
				}
				defer stop()
			}

			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, 127.0.0.1:8473)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the snapshot file on change")
	return cmd
}

// watchSnapshot watches the snapshot file and invokes reload after writes
// settle for the debounce window. The parent directory is watched rather
// than the file itself, since many editors replace files on save.
func watchSnapshot(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, reload func()) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("snapshot file changed", "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
			}
		}
	}()

	logger.Info("watching snapshot file", "path", path, "debounce", debounce)
	return watcher.Close, nil
}

// reloadSnapshot re-reads the snapshot file and replaces the session's
// layout. Failures leave the previous layout serving.
func reloadSnapshot(ctx context.Context, path string, controller *nav.Controller, srv *server.Server, logger *log.Logger) {
	snapshot, err := graphio.ReadSnapshotFile(path)
	if err != nil {
		logger.Warn("reload failed, keeping previous layout", "err", err)
		return
	}

	built, err := controller.ReplaceSnapshot(ctx, snapshot)
	if err != nil {
		return
	}
	srv.AnnounceSnapshot(built.NodeCount())
	logger.Info("snapshot reloaded", "nodes", built.NodeCount())
}
