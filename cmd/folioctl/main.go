package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "folioctl",
		Short:        "Hotel back-office calculators",
		Long:         "Reconcile stay bills and project backup schedule runs from the command line.",
		SilenceUsage: true,
	}

	root.AddCommand(newNextRunCmd(), newBillCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
