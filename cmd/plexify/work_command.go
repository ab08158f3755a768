package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/ffmpeg"
	"plexify/internal/history"
	"plexify/internal/logging"
	"plexify/internal/preflight"
	"plexify/internal/store"
	"plexify/internal/worker"
)

func newWorkCommand(ctx *commandContext) *cobra.Command {
	var workDir string
	var background bool

	cmd := &cobra.Command{
		Use:   "work <media-root>",
		Short: "Run a worker loop until interrupted",
		Long: "Claims queued jobs one at a time and transcodes them. Multiple workers\n" +
			"may run against the same directories, on this machine or others sharing\n" +
			"the filesystem. A first interrupt lets the current job finish; a second\n" +
			"terminates immediately.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mediaRoot, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			workRoot, err := resolveWorkRoot(mediaRoot, workDir)
			if err != nil {
				return err
			}

			st, err := store.Open(workRoot)
			if err != nil {
				return err
			}
			if err := preflight.Verify(preflight.Options{
				MediaRoot:  mediaRoot,
				WorkRoot:   st.Root(),
				Background: background,
			}); err != nil {
				return err
			}

			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			lock := st.NewLock()
			if err := lock.AcquireShared(); err != nil {
				return err
			}
			defer lock.Release()

			hist, err := history.Open(st.Root(), logger)
			if err != nil {
				// History is monitoring only; a worker without it still works.
				logger.Warn("history sidecar unavailable", logging.Error(err))
				hist = nil
			}
			defer hist.Close()

			processor := ffmpeg.NewProcessor(ffmpeg.Options{
				Background: background,
				Nice:       cfg.Worker.BackgroundNice,
			}, logger)

			w := worker.New(st, processor, hist, worker.Config{
				MediaRoot:    mediaRoot,
				PollInterval: time.Duration(cfg.Worker.PollInterval) * time.Second,
				RetryDelay:   time.Duration(cfg.Worker.RetryDelay) * time.Second,
			}, logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				// Restore default signal handling once shutdown begins so a
				// second interrupt terminates immediately.
				<-runCtx.Done()
				stop()
			}()

			return w.Run(runCtx)
		},
	}

	cmd.Flags().StringVar(&workDir, "work-dir", "", "State directory (defaults to the media root)")
	cmd.Flags().BoolVar(&background, "background", false, "Run the engine under nice for desktop sharing")
	return cmd
}
