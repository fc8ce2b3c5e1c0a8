package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/purify/internal/batch"
	"github.com/law-makers/purify/internal/ui"
	"github.com/law-makers/purify/internal/utils/output"
	"github.com/law-makers/purify/pkg/models"
)

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

type batchOptions struct {
	strict   bool
	progress bool
	format   string
}

func newBatchCmd() *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Clean one URL per line from a file or stdin",
		Long: `Cleans every line of a file (or stdin when the file is omitted or "-")
and prints the results in the same order. Blank lines stay blank. Lines that
are not URLs are printed unchanged and reported as warnings.`,
		Example: `  # Clean a list of bookmarks
  purify batch bookmarks.txt > clean.txt

  # Pipe URLs through purify and fail on anything that is not a URL
  cat urls.txt | purify batch --strict

  # Get a CSV report of what was removed
  purify batch urls.txt --format=csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().Int("workers", 0, "Number of concurrent workers (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error if any line is not a valid URL")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, or csv")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string, opts *batchOptions) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	format := strings.ToLower(opts.format)
	if a.Config.OutputJSON {
		format = "json"
	}
	switch format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or csv)", opts.format)
	}

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	lines, err := readLines(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	pool := batch.NewWorkerPool(a.Purifier, a.Config.Workers)
	a.Logger.Debug().Int("lines", len(lines)).Int("workers", pool.Concurrency()).Msg("Starting batch")

	var onDone func(models.BatchResult)
	if opts.progress {
		bar := batch.NewProgressBar(len(lines), cmd.ErrOrStderr())
		defer bar.Finish()
		onDone = func(models.BatchResult) { _ = bar.Add(1) }
	}

	results, err := pool.Run(cmd.Context(), lines, onDone)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = output.WriteJSON(out, results)
	case "csv":
		err = output.WriteBatchCSV(out, results)
	default:
		w := bufio.NewWriter(out)
		for _, r := range results {
			fmt.Fprintln(w, r.Output)
		}
		err = w.Flush()
	}
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	failed := batch.Failed(results)
	a.Logger.Info().Int("lines", len(lines)).Int("failed", failed).Msg("Batch complete")
	if failed > 0 && opts.strict {
		return fmt.Errorf("%d of %d lines are not valid URLs", failed, len(lines))
	}
	if failed > 0 && !a.Config.OutputJSON {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Info(fmt.Sprintf("%d line(s) left unchanged", failed)))
	}
	return nil
}

// openInput returns the file named by args, or stdin
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}
