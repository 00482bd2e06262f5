package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/assure"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
)

func RunSnapshot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-snapshot",
		Short: "Capture a firewall state snapshot and store it as an artifact",
		Long: `Captures a point-in-time state snapshot of a firewall through the
upgrade-assurance evaluator and stores it, pretty-printed, in the
artifact directory. The printed artifact ID can be passed to
compare-snapshots later. Snapshot contents are opaque to this tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			cleanup := setupTracing(v, "run-snapshot")
			defer cleanup()

			return runSnapshot(cmd.Context(), v)
		},
	}

	cmd.Flags().String("firewall-serial", "", "serial number of the firewall to snapshot")
	cmd.Flags().StringSlice("snapshot-list", nil, "comma-separated list of snapshot areas to capture (defaults when empty)")
	cmd.Flags().String("snapshot-name", constants.DEFAULT_SNAPSHOT_NAME, "name under which the snapshot artifact is stored")

	cmd.MarkFlagRequired("firewall-serial")

	return cmd
}

func runSnapshot(ctx context.Context, v *viper.Viper) error {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, constants.ROOT_SPAN_NAME)
	defer span.End()

	serial := v.GetString("firewall-serial")
	types := assure.ResolveSnapshotList(v.GetStringSlice("snapshot-list"))

	eval, err := evaluatorClientFromConfig(v)
	if err != nil {
		return err
	}

	snapshot, err := eval.RunSnapshots(ctx, serial, types)
	if err != nil {
		return err
	}

	store, err := artifactStoreFromConfig(v)
	if err != nil {
		return err
	}

	id, err := store.Save(v.GetString("snapshot-name"), snapshot)
	if err != nil {
		return err
	}

	klog.V(1).Infof("snapshot of %s stored", serial)
	fmt.Printf("Snapshot stored as %s (%s)\n", id, store.Path(id))
	return nil
}
