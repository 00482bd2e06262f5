/*
Logging for the panos-assurance CLI.

Verbosity levels:

1: high level progress of a command, such as "snapshot stored" or
"submitting checks".

2: everything else. If you do not know which level to use, use this level.

Do not log errors in functions that return an error. Instead, return the
error and let the caller log it.
*/
package logger

import (
	"flag"
	"sync"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var lock sync.Mutex

// InitKlogFlags initializes klog flags and exposes the ones we want on the
// command's flag set.
func InitKlogFlags(flags *pflag.FlagSet) {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)

	klogFlags.VisitAll(func(f *flag.Flag) {
		if f.Name == "v" {
			flags.AddGoFlag(f)
		}
	})
}

// SetupLogger sets up the klog logger based on viper configuration.
func SetupLogger(v *viper.Viper) {
	verbose := v.GetBool("debug") || v.IsSet("v")
	SetQuiet(!verbose)
}

// SetQuiet enables or disables klog output.
func SetQuiet(quiet bool) {
	lock.Lock()
	defer lock.Unlock()

	if quiet {
		klog.SetLogger(logr.Discard())
	} else {
		klog.ClearLogger()
	}
}
