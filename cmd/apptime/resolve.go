package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	apperrors "github.com/hrygo/apptime/internal/errors"
	"github.com/hrygo/apptime/plugin/aitime"
	"github.com/hrygo/apptime/server/timezone"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [text...]",
		Short: "Resolve one message given as arguments or on stdin",
		Example: `  apptime resolve 明天下午3點
  apptime resolve --now 2025-11-12T14:18:00+08:00 "11/15 16:00 或 11/12 18:00"
  echo "next Monday 10am" | apptime resolve --granularity second`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "failed to read stdin")
				}
				text = strings.TrimSpace(string(b))
			}

			now, err := referenceFlag(cmd, a)
			if err != nil {
				return err
			}
			singleClause, _ := cmd.Flags().GetBool("single-clause")

			analysis, err := a.analyze(cmd.Context(), text, now, singleClause)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(analysis)
		},
	}
	addResolveFlags(cmd)
	return cmd
}

func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().String("now", "", "reference moment in RFC 3339 (default: current time)")
	cmd.Flags().Bool("single-clause", false, "skip segmentation and candidate selection")
}

// referenceFlag reads --now and pins it to the configured timezone.
func referenceFlag(cmd *cobra.Command, a *app) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("now")
	now, err := timezone.ParseReference(raw)
	if err != nil {
		return time.Time{}, err
	}
	return timezone.ReferenceTime(now, a.profile.Location()), nil
}

// analyze resolves text as a whole message or as a single clause. A clause
// without any date or time answers like a message without one.
func (a *app) analyze(ctx context.Context, text string, now time.Time, singleClause bool) (*aitime.Analysis, error) {
	g := a.granularity()
	if !singleClause {
		return a.service.Analyze(ctx, text, now, g)
	}

	cand, err := a.service.AnalyzeClause(ctx, text, now, g)
	if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		return &aitime.Analysis{}, nil
	}
	if err != nil {
		return nil, err
	}
	result := cand.Result(g)
	return &aitime.Analysis{Found: true, Result: &result}, nil
}
