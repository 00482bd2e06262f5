package cli

import (
	"context"

	"github.com/blang/semver/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/assure"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/evaluator"
)

func RunReadinessChecks() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-readiness-checks",
		Short: "Run pre-upgrade readiness checks against a firewall",
		Long: `Compiles the requested readiness checks into a directive list, submits
it to the upgrade-assurance evaluator, and renders a pass/fail table.

Implemented checks:

- panorama
- ha
- ntp_sync
- candidate_config
- expired_licenses
- active_support
- content_version
- session_exist
- arp (arp_entry_exist)
- ipsec_tunnel (ip_sec_tunnel_status)
- free_disk_space (always included)
- dp_mp_clock_diff (planes_clock_sync)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			cleanup := setupTracing(v, "run-readiness-checks")
			defer cleanup()

			// A default of 0 must not count as a supplied threshold, so the
			// flag's changed state decides, not the value.
			var clockDiff *int
			if cmd.Flags().Changed("dp-mp-clock-diff") {
				diff := v.GetInt("dp-mp-clock-diff")
				clockDiff = &diff
			}

			results, serial, err := runReadinessChecks(cmd.Context(), v, clockDiff)
			if err != nil {
				return err
			}

			return showCheckResults(v.GetString("format"), v.GetString("output"), serial, results)
		},
	}

	cmd.Flags().String("firewall-serial", "", "serial number of the firewall to check")
	cmd.Flags().StringSlice("check-list", nil, "comma-separated list of checks to run (defaults when empty)")
	cmd.Flags().String("min-content-version", "", "minimum content version to require; enables the configured content_version check")
	cmd.Flags().String("candidate-version", "", "target PAN-OS version; the free_disk_space check measures against its image size")
	cmd.Flags().Int("dp-mp-clock-diff", 0, "allowed drift in seconds between the data plane and management plane clocks")
	cmd.Flags().String("ipsec-tunnel-status", "", "name of an IPsec tunnel that must be up")
	cmd.Flags().String("check-session-exists", "", "session that must exist, as source/destination/port (example: 10.10.10.10/8.8.8.8/443)")
	cmd.Flags().String("arp-entry-exists", "", "IPv4 address that must have an ARP entry")
	cmd.Flags().String("format", "human", "output format, one of human, json, yaml")
	cmd.Flags().StringP("output", "o", "", "write the results to this file instead of stdout")

	cmd.MarkFlagRequired("firewall-serial")

	return cmd
}

func runReadinessChecks(ctx context.Context, v *viper.Viper, clockDiff *int) (evaluator.CheckResults, string, error) {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, constants.ROOT_SPAN_NAME)
	defer span.End()

	serial := v.GetString("firewall-serial")

	if candidate := v.GetString("candidate-version"); candidate != "" {
		if _, err := semver.ParseTolerant(candidate); err != nil {
			klog.Warningf("candidate version %q does not look like a PAN-OS version: %v", candidate, err)
		}
	}

	opts := assure.ReadinessOptions{
		Checks:            v.GetStringSlice("check-list"),
		MinContentVersion: v.GetString("min-content-version"),
		CandidateVersion:  v.GetString("candidate-version"),
		IPSecTunnelStatus: v.GetString("ipsec-tunnel-status"),
		SessionExists:     v.GetString("check-session-exists"),
		ARPEntryExists:    v.GetString("arp-entry-exists"),
		DPMPClockDiff:     clockDiff,
	}

	// HA state only matters when the default check list is in play.
	if len(opts.Checks) == 0 {
		device, err := deviceClientFromConfig(v, serial)
		if err != nil {
			return nil, serial, err
		}
		if err := device.Initialize(ctx); err != nil {
			return nil, serial, err
		}
		haEnabled, err := device.HAEnabled(ctx)
		if err != nil {
			return nil, serial, err
		}
		opts.HAEnabled = haEnabled
	}

	directives, err := assure.CompileReadinessChecks(opts)
	if err != nil {
		return nil, serial, err
	}

	eval, err := evaluatorClientFromConfig(v)
	if err != nil {
		return nil, serial, err
	}

	results, err := eval.RunReadinessChecks(ctx, serial, directives)
	if err != nil {
		return nil, serial, err
	}

	return results, serial, nil
}
