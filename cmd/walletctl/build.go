package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/app"
	"github.com/vbncursed/vkr/wallet-service/internal/config"
)

func buildCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build [serial]",
		Short: "Build a signed .pkpass for a coupon and write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			a, err := app.New(cmd.Context(), cfg, app.NewLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := a.Service.GeneratePass(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = "coupon-" + file.SerialNumber + ".pkpass"
			}
			if err := os.WriteFile(out, file.Data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(file.Data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default coupon-<serial>.pkpass)")
	return cmd
}
