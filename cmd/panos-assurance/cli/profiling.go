package cli

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cpuProfileFile *os.File

// addProfilingFlags adds the --cpuprofile and --memprofile flags to the
// given command.
func addProfilingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("cpuprofile", "", "File path to write cpu profiling data")
	cmd.PersistentFlags().String("memprofile", "", "File path to write memory profiling data")
}

// startProfiling starts CPU profiling if --cpuprofile was set.
func startProfiling() error {
	v := viper.GetViper()
	if v.GetString("cpuprofile") == "" {
		return nil
	}

	var err error
	cpuProfileFile, err = os.Create(v.GetString("cpuprofile"))
	if err != nil {
		return errors.Wrap(err, "could not create CPU profile")
	}
	if err := pprof.StartCPUProfile(cpuProfileFile); err != nil {
		cpuProfileFile.Close()
		cpuProfileFile = nil
		return errors.Wrap(err, "could not start CPU profile")
	}
	return nil
}

// stopProfiling stops CPU profiling and writes a heap profile if
// --memprofile was set.
func stopProfiling() error {
	v := viper.GetViper()

	if v.GetString("memprofile") != "" {
		f, err := os.Create(v.GetString("memprofile"))
		if err != nil {
			return errors.Wrap(err, "could not create memory profile")
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errors.Wrap(err, "could not write memory profile")
		}
	}

	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		return cpuProfileFile.Close()
	}
	return nil
}
