package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nickandperla.net/bfvm"
)

var (
	configPath string
	quiet      bool

	recordRun  bool
	expectPath string
	profileRun bool

	historyLimit   int
	historySummary bool
)

var rootCmd = &cobra.Command{
	Use:   "bfvm",
	Short: "A Brainfuck interpreter with an auto-expanding tape",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		if quiet {
			logrus.SetLevel(logrus.ErrorLevel)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a Brainfuck source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a bfvm config.toml")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress cell wrap diagnostics")

	runCmd.Flags().BoolVar(&recordRun, "record", false, "persist run stats to the history database")
	runCmd.Flags().StringVar(&expectPath, "expect", "", "compare program output against the contents of this file")
	runCmd.Flags().BoolVar(&profileRun, "profile", false, "write a CPU profile for the run")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "print aggregate stats instead of rows")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadConfig() (*bfvm.ToolConfig, error) {
	if configPath == "" {
		return bfvm.DefaultToolConfig(), nil
	}
	return bfvm.LoadToolConfig(configPath)
}

func runRun(cmd *cobra.Command, args []string) error {
	if profileRun {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	toolConfig, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("unable to read source file: %w", err)
	}

	terminal := bfvm.NewTerminal(os.Stdin)
	defer terminal.Restore()

	var captured bytes.Buffer
	write := func(b byte) error {
		if expectPath != "" {
			captured.WriteByte(b)
		}
		_, err := os.Stdout.Write([]byte{b})
		return err
	}

	stats, runErr := bfvm.RunProgram(string(source), toolConfig.Machine, terminal.ReadChar, write)

	if recordRun && stats != nil {
		if err := record(toolConfig, args[0], string(source), stats, runErr); err != nil {
			logrus.Errorf("Failed to record run: %v", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if expectPath != "" {
		return checkExpected(captured.String())
	}

	return nil
}

func record(toolConfig *bfvm.ToolConfig, sourcePath, source string, stats *bfvm.RunStats, runErr error) error {
	persist, err := bfvm.NewPersistence(toolConfig.Persistence)
	if err != nil {
		return err
	}
	defer persist.Shutdown()

	_, err = persist.CreateRun(bfvm.NewRunRecord(sourcePath, bfvm.Clean(source), toolConfig.Machine, stats, runErr))
	return err
}

func checkExpected(got string) error {
	expected, err := os.ReadFile(expectPath)
	if err != nil {
		return fmt.Errorf("unable to read expected output file: %w", err)
	}

	check := bfvm.CheckOutput(got, string(expected))
	if check.Exact {
		fmt.Fprintf(os.Stderr, "output matches %s\n", expectPath)
		return nil
	}

	return fmt.Errorf("output differs from %s: edit distance %d, similarity %.3f", expectPath, check.Distance, check.Similarity)
}

func runHistory(cmd *cobra.Command, args []string) error {
	toolConfig, err := loadConfig()
	if err != nil {
		return err
	}

	persist, err := bfvm.NewPersistence(toolConfig.Persistence)
	if err != nil {
		return err
	}
	defer persist.Shutdown()

	if historySummary {
		summary, err := persist.Summarize()
		if err != nil {
			return err
		}
		fmt.Printf("runs: %d (%d failed)\n", summary.RunCount, summary.FailedCount)
		fmt.Printf("instructions: %d total, %d max, %.1f avg\n", summary.TotalInstructions, summary.MaxInstructionCount, summary.AvgInstructionCount)
		fmt.Printf("cell wraps: %d overflows, %d underflows\n", summary.TotalOverflowCount, summary.TotalUnderflowCount)
		return nil
	}

	records, err := persist.RecentRuns(historyLimit)
	if err != nil {
		return err
	}

	for _, r := range records {
		status := "ok"
		if r.MachineError != nil {
			status = *r.MachineError
		}
		fmt.Printf("%-4d %s %-20s %8d ops %8dus %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.SourcePath, r.InstructionCount, r.DurationMicros, status)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
