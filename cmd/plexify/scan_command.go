package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/discovery"
	"plexify/internal/enqueue"
	"plexify/internal/store"
)

func errUnknownPreset(name string) error {
	return fmt.Errorf("unknown ffmpeg preset %q", name)
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var workDir string
	var preset string

	cmd := &cobra.Command{
		Use:   "scan <media-root>",
		Short: "Discover media files and queue transcode jobs",
		Args:  cobra.ExactArgs(1),
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
			params, err := encodingParams(cfg, preset)
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			st, err := store.Open(workRoot)
			if err != nil {
				return err
			}
			lock := st.NewLock()
			if err := lock.AcquireShared(); err != nil {
				return err
			}
			defer lock.Release()

			candidates, err := discovery.Scan(mediaRoot, logger)
			if err != nil {
				return err
			}

			intake := enqueue.New(st, mediaRoot, params, logger)
			outcomes := make(map[enqueue.Outcome]int)
			for _, candidate := range candidates {
				outcome, err := intake.Enqueue(candidate.RelPath, candidate.Kind)
				if err != nil {
					return err
				}
				outcomes[outcome]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d candidate file(s) under %s\n", len(candidates), mediaRoot)
			fmt.Fprintf(out, "  queued:             %d\n", outcomes[enqueue.OutcomeQueued])
			fmt.Fprintf(out, "  already tracked:    %d\n", outcomes[enqueue.OutcomeAlreadyTracked])
			fmt.Fprintf(out, "  output exists:      %d\n", outcomes[enqueue.OutcomeOutputExists])
			fmt.Fprintf(out, "  missing subtitle:   %d\n", outcomes[enqueue.OutcomeMissingSubtitle])
			fmt.Fprintf(out, "  concurrent enqueue: %d\n", outcomes[enqueue.OutcomeConcurrentEnqueue])
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "work-dir", "", "State directory (defaults to the media root)")
	cmd.Flags().StringVar(&preset, "preset", "", "Override the configured ffmpeg preset for newly queued jobs")
	return cmd
}
