package cli

import (
	"fmt"

	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/internal/traces"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/artifacts"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/evaluator"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/panos"
)

func deviceClientFromConfig(v *viper.Viper, serial string) (*panos.Client, error) {
	return panos.NewClient(&panos.Options{
		URL:    v.GetString("url"),
		APIKey: v.GetString("api-key"),
		Port:   v.GetString("port"),
		Serial: serial,
	})
}

func evaluatorClientFromConfig(v *viper.Viper) (*evaluator.Client, error) {
	return evaluator.NewClient(&evaluator.ClientOptions{
		Endpoint: v.GetString("assurance-endpoint"),
		APIKey:   v.GetString("assurance-api-key"),
	})
}

func artifactStoreFromConfig(v *viper.Viper) (*artifacts.Store, error) {
	return artifacts.NewStore(v.GetString("artifact-dir"))
}

// setupTracing configures the trace provider and returns a function that
// shuts it down and prints the execution summary when debug output is on.
func setupTracing(v *viper.Viper, processName string) func() {
	closer, err := traces.ConfigureTracing(processName)
	if err != nil {
		// Do not fail the command if tracing fails
		klog.Errorf("Failed to initialize open tracing provider: %v", err)
		closer = func() {}
	}

	return func() {
		// The summary must be read before shutdown discards the spans.
		if v.GetBool("debug") || v.IsSet("v") {
			fmt.Printf("\n%s", traces.GetExporterInstance().GetSummary())
		}
		closer()
	}
}
