package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/enqueue"
	"plexify/internal/fileutil"
	"plexify/internal/media"
	"plexify/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var mediaRootFlag string
	var workDir string
	var preset string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Queue a single media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mediaRoot, err := config.ExpandPath(mediaRootFlag)
			if err != nil {
				return err
			}
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if !fileutil.PathExists(target) {
				return fmt.Errorf("media file %s does not exist", target)
			}

			rel, err := filepath.Rel(mediaRoot, target)
			if err != nil {
				return fmt.Errorf("resolve path relative to media root: %w", err)
			}
			relSlash := filepath.ToSlash(rel)

			kind, ok := media.KindForPath(relSlash)
			if !ok {
				return fmt.Errorf("unsupported media extension on %s (expected .webm or .mkv)", target)
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

			outcome, err := enqueue.New(st, mediaRoot, params, logger).Enqueue(relSlash, kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", relSlash, outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaRootFlag, "media-root", ".", "Media root the file's identity is derived from")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "State directory (defaults to the media root)")
	cmd.Flags().StringVar(&preset, "preset", "", "Override the configured ffmpeg preset for this job")
	return cmd
}
