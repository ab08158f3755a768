package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/history"
	"plexify/internal/logging"
	"plexify/internal/store"
)

const recentAttempts = 10

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show queue state and recent attempt history",
		Args:  cobra.NoArgs,
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
			counts, err := st.Counts()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			rows := make([][]string, 0, len(store.Locations)+1)
			for _, loc := range store.Locations {
				rows = append(rows, []string{string(loc), strconv.Itoa(counts[loc])})
				total += counts[loc]
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})
			fmt.Fprintln(out, renderTable([]string{"State", "Jobs"}, rows, 2))

			hist, err := history.Open(st.Root(), logging.NewNop())
			if err != nil {
				fmt.Fprintf(out, "history unavailable: %v\n", err)
				return nil
			}
			defer hist.Close()

			attempts, err := hist.Recent(recentAttempts)
			if err != nil {
				return err
			}
			if len(attempts) == 0 {
				fmt.Fprintln(out, "No attempts recorded yet.")
				return nil
			}

			attemptRows := make([][]string, 0, len(attempts))
			for _, a := range attempts {
				attemptRows = append(attemptRows, []string{
					a.Identity,
					shortWorkerID(a.WorkerID),
					a.Outcome,
					a.FinishedAt.Local().Format(time.DateTime),
					a.FinishedAt.Sub(a.StartedAt).Round(time.Second).String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Job", "Worker", "Outcome", "Finished", "Duration"},
				attemptRows, 5,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "work-dir", ".", "State directory to inspect")
	return cmd
}

func shortWorkerID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
