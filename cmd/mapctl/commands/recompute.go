package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
)

var recomputeMapID string

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the stored progress of requirements",
	Long: `Recomputes every requirement's current value and the map's total credits
from its classes. Without --map every map is processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		progress := service.NewProgressService(repository.NewRepository(e.db), e.logger)
		ctx := context.Background()
		out := cmd.OutOrStdout()

		if recomputeMapID != "" {
			if err := progress.Recompute(ctx, recomputeMapID); err != nil {
				return err
			}
			fmt.Fprintf(out, "recomputed map %s\n", recomputeMapID)
			return nil
		}

		n, err := progress.RecomputeAll(ctx)
		if err != nil {
			return fmt.Errorf("stopped after %d maps: %w", n, err)
		}
		fmt.Fprintf(out, "recomputed %d maps\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
	recomputeCmd.Flags().StringVar(&recomputeMapID, "map", "", "only this map id")
}
