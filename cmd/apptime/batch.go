package main

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/hrygo/apptime/internal/errors"
	"github.com/hrygo/apptime/plugin/aitime"
)

// batchLine is one output line of the batch command.
type batchLine struct {
	Line int `json:"line"`
	*aitime.Analysis
	Error *lineError `json:"error,omitempty"`
}

type lineError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve every stdin line, printing one JSON line per input line",
		Long: `batch resolves each line of stdin concurrently against one shared reference
moment and prints the results in input order. A line that fails validation
yields an "error" object instead of aborting the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := referenceFlag(cmd, a)
			if err != nil {
				return err
			}
			singleClause, _ := cmd.Flags().GetBool("single-clause")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			if concurrency <= 0 {
				concurrency = 1
			}

			var lines []string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read stdin")
			}

			start := time.Now()
			results := make([]batchLine, len(lines))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for i, text := range lines {
				i, text := i, text
				g.Go(func() error {
					results[i].Line = i + 1
					analysis, err := a.analyze(ctx, text, now, singleClause)
					if apperrors.IsCode(err, apperrors.ErrCodeContextCanceled) {
						return err
					}
					if err != nil {
						code := apperrors.GetCodeFromError(err, apperrors.ErrCodeInternal)
						results[i].Error = &lineError{Code: string(code), Message: err.Error()}
						return nil
					}
					results[i].Analysis = analysis
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, r := range results {
				if err := enc.Encode(r); err != nil {
					return errors.Wrap(err, "failed to write result")
				}
			}
			a.logger.Debug("batch resolved",
				slog.Int("lines", len(lines)),
				slog.Int("concurrency", concurrency),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return nil
		},
	}
	addResolveFlags(cmd)
	cmd.Flags().Int("concurrency", 4, "number of lines resolved in parallel")
	return cmd
}
