package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	defer glog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellctl",
		Short: "Run reactive cell scenarios",
		Long: `cellctl drives the cell engine through scripted scenarios.

Use -v=2 together with -logtostderr to follow write cascades.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// glog registers its flags on the standard flag set
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		demoCmd(),
		metricsCmd(),
	)

	return rootCmd
}
