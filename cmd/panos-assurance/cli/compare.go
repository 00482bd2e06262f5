package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/assure"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/evaluator"
)

func CompareSnapshots() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-snapshots",
		Short: "Compare two stored snapshots to detect post-upgrade drift",
		Long: `Loads two snapshot artifacts taken by run-snapshot, compiles the
requested comparison reports into a directive list, and submits both to
the upgrade-assurance evaluator. The json and yaml formats include the
evaluator's full diff reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			cleanup := setupTracing(v, "compare-snapshots")
			defer cleanup()

			var threshold *int
			if cmd.Flags().Changed("session-stats-threshold") {
				value := v.GetInt("session-stats-threshold")
				threshold = &value
			}

			results, err := compareSnapshots(cmd.Context(), v, threshold)
			if err != nil {
				return err
			}

			return showComparisonResults(v.GetString("format"), v.GetString("output"), results)
		},
	}

	cmd.Flags().String("left-snapshot", "", "artifact ID (or file path) of the pre-upgrade snapshot")
	cmd.Flags().String("right-snapshot", "", "artifact ID (or file path) of the post-upgrade snapshot")
	cmd.Flags().StringSlice("snapshot-list", nil, "comma-separated list of snapshot areas to compare (defaults when empty)")
	cmd.Flags().Int("session-stats-threshold", 0, "allowed percentage of change in session counters")
	cmd.Flags().String("format", "human", "output format, one of human, json, yaml")
	cmd.Flags().StringP("output", "o", "", "write the results to this file instead of stdout")

	cmd.MarkFlagRequired("left-snapshot")
	cmd.MarkFlagRequired("right-snapshot")

	return cmd
}

func compareSnapshots(ctx context.Context, v *viper.Viper, threshold *int) (evaluator.ComparisonResults, error) {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, constants.ROOT_SPAN_NAME)
	defer span.End()

	store, err := artifactStoreFromConfig(v)
	if err != nil {
		return nil, err
	}

	left, err := store.Load(v.GetString("left-snapshot"))
	if err != nil {
		return nil, err
	}
	right, err := store.Load(v.GetString("right-snapshot"))
	if err != nil {
		return nil, err
	}

	reports := assure.CompileSnapshotComparisons(v.GetStringSlice("snapshot-list"), threshold)

	eval, err := evaluatorClientFromConfig(v)
	if err != nil {
		return nil, err
	}

	return eval.CompareSnapshots(ctx, left, right, reports)
}
