package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdf2html/internal/worker"
)

type batchFlags struct {
	concurrency int
	outputDir   string
	fromFile    string
	rate        float64
	burst       int
	timeout     time.Duration
}

func (a *app) newBatchCmd() *cobra.Command {
	var bf batchFlags

	batchCmd := &cobra.Command{
		Use:   "batch [inputs...]",
		Short: "Convert many files in parallel",
		Long: `Batch converts many PDF or pdf2xml files concurrently:
- Inputs come from the arguments and/or a file (one per line)
- Each input gets its own .pdf2html.yaml sections applied
- Output goes beside each input, or into --output-dir

Example:
  pdf2html batch books/*.pdf
  pdf2html batch --from-file inputs.txt --concurrency 8 --output-dir ./html
  pdf2html batch books/*.pdf --rate 2 --timeout 5m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args, bf)
		},
	}

	batchCmd.Flags().IntVar(&bf.concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&bf.outputDir, "output-dir", "", "output directory (default: beside each input)")
	batchCmd.Flags().StringVar(&bf.fromFile, "from-file", "", "read input paths from a file, one per line")
	batchCmd.Flags().Float64Var(&bf.rate, "rate", 0, "maximum pdftohtml launches per second (0: unlimited)")
	batchCmd.Flags().IntVar(&bf.burst, "burst", 1, "launches allowed at once when rate limited")
	batchCmd.Flags().DurationVar(&bf.timeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	return batchCmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string, bf batchFlags) error {
	inputs := append([]string(nil), args...)
	if bf.fromFile != "" {
		listed, err := worker.ReadInputsFromFile(bf.fromFile)
		if err != nil {
			return fmt.Errorf("read inputs: %w", err)
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs: pass files as arguments or use --from-file")
	}

	if bf.outputDir != "" {
		if err := os.MkdirAll(bf.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), bf.timeout)
	defer cancel()

	a.logger.Info("starting batch",
		"inputs", len(inputs),
		"workers", bf.concurrency,
		"output_dir", bf.outputDir)

	processor := worker.NewBatchProcessor(a, bf.concurrency).
		WithLimiter(worker.NewLimiter(bf.rate, bf.burst))
	results := processor.Process(ctx, inputs, bf.outputDir)

	out := cmd.OutOrStdout()
	failures := 0
	paragraphs := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(out, "FAIL %s: %v\n", result.Input, result.Error)
			continue
		}
		paragraphs += result.Stats.Paragraphs
		fmt.Fprintf(out, "ok   %s -> %s (%d paragraphs, %d warnings)\n",
			result.Input, result.Output, result.Stats.Paragraphs, result.Stats.Warnings)
	}

	a.logger.Info("batch complete",
		"succeeded", len(results)-failures,
		"failed", failures,
		"paragraphs", paragraphs)
	if failures > 0 {
		return fmt.Errorf("%d of %d conversions failed", failures, len(results))
	}
	return nil
}
