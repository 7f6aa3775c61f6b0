// Package main implements the image comparison helper used when a test's
// rendered output differs from its baseline. It prints the difference in the
// "diff: N% failed" format the harness expects and exits non-zero on
// mismatch.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wpekit/wpekit/imagediff"
)

const (
	exitMismatch = 1
	exitError    = 2
)

func main() {
	var tolerance float64

	rootCmd := &cobra.Command{
		Use:           "wpe-imagediff <actual.png> <expected.png>",
		Short:         "Compare two PNG images pixel by pixel",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := imagediff.CompareFiles(args[0], args[1], tolerance)
			if err != nil {
				return err
			}
			if !res.Equal() {
				fmt.Printf("diff: %.2f%% failed\n", res.Percent())
				os.Exit(exitMismatch)
			}
			fmt.Println("diff: 0.00% passed")
			return nil
		},
	}
	rootCmd.Flags().Float64Var(&tolerance, "tolerance", imagediff.DefaultTolerance, "per-pixel color distance treated as equal, 0..1")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitError)
	}
}
