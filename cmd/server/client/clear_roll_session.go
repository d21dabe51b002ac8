package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var clearRollSessionCmd = &cobra.Command{
	Use:   "clear-roll-session [character]",
	Short: "Clear a character's recent rolls",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		client, cleanup, err := createDiceClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.ClearRollSession(ctx, &apiv1alpha1.ClearRollSessionRequest{
			EntityId: args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to clear roll history: %w", err)
		}

		fmt.Printf("%s (%d rolls)\n", resp.Message, resp.RollsCleared)
		return nil
	},
}
