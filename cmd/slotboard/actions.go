package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/slotboard/internal/app"
	"github.com/five82/slotboard/internal/command"
	"github.com/five82/slotboard/internal/grid"
)

var daysFlag string

var (
	testCmd = &cobra.Command{
		Use:   "test",
		Short: "Probe candidate backends and report the first reachable one",
		Args:  cobra.NoArgs,
		RunE:  actionRunner(command.ActionTest),
	}
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load the backend's sample data",
		Args:  cobra.NoArgs,
		RunE:  actionRunner(command.ActionSeed),
	}
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a timetable and print the grid",
		Args:  cobra.NoArgs,
		RunE:  actionRunner(command.ActionGenerate),
	}
	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Fetch the current timetable and print the grid",
		Args:  cobra.NoArgs,
		RunE:  actionRunner(command.ActionShow),
	}
	quickRunCmd = &cobra.Command{
		Use:   "quickrun",
		Short: "Test, seed and generate in one go",
		Args:  cobra.NoArgs,
		RunE:  actionRunner(command.ActionQuickRun),
	}
	uploadCmd = &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a CSV or Excel file of classes",
		Args:  cobra.ExactArgs(1),
		RunE:  actionRunner(command.ActionUpload),
	}
)

func init() {
	for _, c := range []*cobra.Command{generateCmd, showCmd, quickRunCmd} {
		c.Flags().StringVar(&daysFlag, "days", "", "comma-separated day axis (default from config)")
	}
	rootCmd.AddCommand(testCmd, seedCmd, generateCmd, showCmd, quickRunCmd, uploadCmd)
}

// actionRunner runs one controller action without the TUI and prints its
// outcome.
func actionRunner(action command.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		opts := options()
		opts.Console = cmd.ErrOrStderr()
		env, err := app.Setup(opts)
		if err != nil {
			return err
		}
		defer env.Close()

		days := env.Config.DayList()
		if daysFlag != "" {
			days = grid.ParseDays(daysFlag)
			if len(days) == 0 {
				return fmt.Errorf("--days %q names no days", daysFlag)
			}
		}

		req := command.Request{Action: action, Days: days}
		if len(args) > 0 {
			req.Path = args[0]
		}

		out := env.Controller.Execute(ctx, req)
		if out.Err != nil {
			return errors.New(out.Message)
		}
		return printOutcome(cmd.OutOrStdout(), out)
	}
}

func printOutcome(w io.Writer, out command.Outcome) error {
	if _, err := fmt.Fprintln(w, out.Message); err != nil {
		return err
	}
	if out.Grid != nil {
		if _, err := fmt.Fprintln(w, grid.Render(out.Grid.Grid, grid.PlainStyles())); err != nil {
			return err
		}
		if n := out.Grid.Grid.Unplaced; n > 0 {
			fmt.Fprintf(w, "%d of %d entries fall outside the shown days and slots\n", n, out.Grid.Entries)
		}
	}
	if out.Upload != nil && len(out.Upload.Raw) > 0 {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		var v any
		if err := json.Unmarshal(out.Upload.Raw, &v); err != nil {
			return fmt.Errorf("decode upload result: %w", err)
		}
		return enc.Encode(v)
	}
	return nil
}
