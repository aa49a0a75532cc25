package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jdock/deckpack/internal/engine"
	"github.com/jdock/deckpack/internal/model"
)

func newPackCmd() *cobra.Command {
	var maxTime float64

	cmd := &cobra.Command{
		Use:   "pack [request.json]",
		Short: "pack blocks onto a carrier deck and print the resulting placement record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open request: %w", err)
				}
				defer f.Close()
				r = f
			}

			var req model.PackRequest
			if err := json.NewDecoder(r).Decode(&req); err != nil {
				return fmt.Errorf("decode request: %w", err)
			}
			if maxTime > 0 {
				req.Carrier.MaxTimeSeconds = maxTime
			}

			runID := uuid.New().String()[:8]
			runLog := loggerFromContext(cmd.Context()).With("run_id", runID)
			ctx := engine.WithLogger(cmd.Context(), runLog)

			rec, err := engine.Search(ctx, req, engine.DefaultOptions())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().Float64Var(&maxTime, "max-time", 0, "override the request's max_time_seconds budget")

	return cmd
}
