package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var getRollSessionCmd = &cobra.Command{
	Use:   "get-roll-session [character]",
	Short: "Show a character's recent rolls",
	Long: `Retrieve the recent roll history of a character. Example:

  get-roll-session Grog`,
	Args: cobra.ExactArgs(1),
	RunE: getRollSession,
}

func getRollSession(_ *cobra.Command, args []string) error {
	character := args[0]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetRollSession(ctx, &apiv1alpha1.GetRollSessionRequest{
		EntityId: character,
	})
	if err != nil {
		return fmt.Errorf("failed to get roll history: %w", err)
	}

	fmt.Printf("\n📜 Roll History for %s:\n", character)
	fmt.Printf("================\n")
	fmt.Printf("Oldest roll: %s\n", formatUnix(resp.CreatedAt))
	fmt.Printf("Expires: %s\n", formatUnix(resp.ExpiresAt))
	fmt.Printf("Total Rolls: %d\n", len(resp.Rolls))

	printRolls(resp.Rolls)
	return nil
}
