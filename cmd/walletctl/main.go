package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "walletctl",
		Short:   "walletctl - operator tool for coupon Wallet passes",
		Version: Version,
	}

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(broadcastCmd())
	rootCmd.AddCommand(verifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
