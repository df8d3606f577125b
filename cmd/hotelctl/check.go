package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex-user-go/hotelpms/internal/probe"
)

var flagCheckTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check [url]",
	Short: "Check whether a URL is reachable",
	Long: "Issues a single GET with a fixed timeout and prints one of: reachable,\n" +
		"returned status code N, unreachable, or timed out. Without an argument the\n" +
		"configured PMS base URL is checked.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := clientConfig().BaseURL
		if len(args) == 1 {
			url = args[0]
		}

		fmt.Println(probe.New(flagCheckTimeout).Check(url))
	},
}

func init() {
	checkCmd.Flags().DurationVar(&flagCheckTimeout, "timeout", probe.DefaultTimeout, "request timeout")
}
