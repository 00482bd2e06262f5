package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/logger"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panos-assurance",
		Short: "Assess PAN-OS firewall upgrade readiness",
		Long: `panos-assurance snapshots the state of a PAN-OS firewall before an
upgrade, runs a set of readiness checks against it, and compares two
snapshots to detect drift after the upgrade. The assessment itself is
performed by an external upgrade-assurance evaluator; this tool compiles
the requested checks into the evaluator's directive format and renders
the results.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			v := viper.GetViper()
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.BindPFlags(cmd.Flags())

			logger.SetupLogger(v)

			if err := startProfiling(); err != nil {
				klog.Errorf("Failed to start profiling: %v", err)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := stopProfiling(); err != nil {
				klog.Errorf("Failed to stop profiling: %v", err)
			}
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(RunReadinessChecks())
	cmd.AddCommand(RunSnapshot())
	cmd.AddCommand(CompareSnapshots())
	cmd.AddCommand(Test())
	cmd.AddCommand(VersionCmd())

	cmd.PersistentFlags().String("url", "", "management URL of the Panorama (or firewall) instance")
	cmd.PersistentFlags().String("api-key", "", "API key for the management plane")
	cmd.PersistentFlags().String("port", "443", "management-plane port")
	cmd.PersistentFlags().String("assurance-endpoint", "", "URL of the upgrade-assurance evaluator service")
	cmd.PersistentFlags().String("assurance-api-key", "", "API key for the upgrade-assurance evaluator service")
	cmd.PersistentFlags().String("artifact-dir", "snapshots", "directory where snapshot artifacts are stored")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging and the execution summary")

	logger.InitKlogFlags(cmd.PersistentFlags())
	addProfilingFlags(cmd)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PANOS_ASSURANCE")
	viper.AutomaticEnv()
}
