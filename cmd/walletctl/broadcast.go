package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/app"
	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/queue"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

func broadcastCmd() *cobra.Command {
	var (
		expires string
		direct  bool
	)
	cmd := &cobra.Command{
		Use:   "broadcast [merchantId] [message]",
		Short: "Update a merchant's Wallet message and wake its devices",
		Long: `Publishes a broadcast event to the wallet.broadcast queue.
With --direct the update and push run in this process instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ev := queue.BroadcastEvent{MerchantID: args[0], Message: args[1]}
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("--expires: %w", err)
				}
				ev.ExpiresAt = &t
			}

			if !direct {
				if cfg.RabbitURL == "" {
					return fmt.Errorf("RABBITMQ_URL is not set; use --direct")
				}
				if err := queue.Publish(cmd.Context(), cfg.RabbitURL, ev); err != nil {
					return err
				}
				fmt.Printf("Queued broadcast for %s\n", ev.MerchantID)
				return nil
			}

			a, err := app.New(cmd.Context(), cfg, app.NewLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.Service.Broadcast(cmd.Context(), service.BroadcastCommand{
				MerchantID: ev.MerchantID, Message: ev.Message, ExpiresAt: ev.ExpiresAt,
			})
			fmt.Printf("Devices: %d  Sent: %d  Failed: %d  Unregistered: %d\n", res.Devices, res.Sent, res.Failed, res.Unregistered)
			for _, r := range res.Results {
				if !r.Success() {
					fmt.Printf("  %s… status=%d reason=%s\n", shortToken(r.Token), r.Status, r.Reason)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&expires, "expires", "", "New expiration for the merchant's passes (RFC 3339)")
	cmd.Flags().BoolVar(&direct, "direct", false, "Run the broadcast in-process instead of publishing to the queue")
	return cmd
}

func shortToken(t string) string {
	if len(t) > 8 {
		return t[:8]
	}
	return t
}
