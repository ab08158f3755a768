package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/store"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all queue state",
		Long: "Deletes the state directories wholesale. This is the only operation\n" +
			"that destroys job descriptors; it requires the exclusive store lock and\n" +
			"refuses to run while any worker or scanner is active.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			workRoot, err := config.ExpandPath(workDir)
			if err != nil {
				return err
			}

			st, err := store.Open(workRoot)
			if err != nil {
				return err
			}
			lock := st.NewLock()
			acquired, err := lock.TryExclusive()
			if err != nil {
				return err
			}
			if !acquired {
				return errors.New("store is in use; stop active workers before cleaning")
			}
			defer lock.Release()

			if err := st.Clean(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed queue state under %s\n", st.Root())
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "work-dir", ".", "State directory to clean")
	return cmd
}
