// Package main implements the CLI for launching the WPE browser the way the
// test harness does: same environment, same search paths, same fallback
// rules between Cog and MiniBrowser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wpekit/wpekit"
)

const exitError = 2

var opts wpekit.Options

func main() {
	rootCmd := &cobra.Command{
		Use:   "wpebrowser",
		Short: "Launch and inspect the WPE browser build",
		Example: `  wpebrowser run https://wpewebkit.org   # launch the selected browser
  wpebrowser results layout-test-results/results.html
  wpebrowser check                       # verify system dependencies
  wpebrowser paths                       # print baseline and expectations order`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd(), resultsCmd(), checkCmd(), pathsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitError)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [args...]",
		Short: "Launch the selected browser (Cog or MiniBrowser) with arguments",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port := wpekit.NewWPEPort(opts)
			status, err := port.RunMiniBrowser(cmd.Context(), args)
			if err != nil {
				return err
			}
			if status != 0 {
				os.Exit(status)
			}
			return nil
		},
	}
}

func resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <results.html>",
		Short: "Open a results page in the selected browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port := wpekit.NewWPEPort(opts)
			status, err := port.ShowResultsHTML(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if status != 0 {
				os.Exit(status)
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the system can run tests for this port",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port := wpekit.NewWPEPort(opts)
			if !port.CheckSysDeps() {
				return fmt.Errorf("system dependency check failed for port %s", port.Name())
			}
			fmt.Printf("port %s: driver %s ready (%s)\n", port.Name(), port.DriverClass().Name(), port.DriverPath())
			return nil
		},
	}
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the baseline search order and expectations load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port := wpekit.NewWPEPort(opts)
			fmt.Println("baseline search path (most specific first):")
			for _, p := range port.BaselineSearchPath() {
				fmt.Println("  " + p)
			}
			fmt.Println("expectations files (load order):")
			for _, p := range port.ExpectationsFiles() {
				fmt.Println("  " + p)
			}
			fmt.Println("script flag:", port.FlagForScripts())
			fmt.Println("image diff:", port.ImageDiffPath())
			return nil
		},
	}
}
