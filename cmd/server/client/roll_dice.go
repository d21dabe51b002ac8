package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var rollDescription string

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [character] [label]",
	Short: "Roll dice for a character using dice notation",
	Long: `Roll a custom formula and see the character's recent rolls. Examples:

  roll-dice 4d6 Grog "Ability Scores"
  roll-dice 1d20+5 Vex Initiative
  roll-dice 2d8+3 Pike Healing --description "Cure Wounds"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().StringVar(&rollDescription, "description", "", "describes where the modifier comes from")
}

func rollDice(_ *cobra.Command, args []string) error {
	notation := args[0]
	character := args[1]
	label := ""
	if len(args) == 3 {
		label = args[2]
	}

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Printf("Rolling %s for %s...\n", notation, character)

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId:            character,
		Context:             label,
		Notation:            notation,
		ModifierDescription: rollDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	fmt.Printf("\n🎲 Dice Roll Results:\n")
	fmt.Printf("===================\n")
	printRolls(resp.Rolls)

	fmt.Printf("\nHistory expires at: %s\n", formatUnix(resp.ExpiresAt))
	fmt.Printf("Rolls in history: %d\n", len(resp.Rolls))

	return nil
}
