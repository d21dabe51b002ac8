// Package main is the entry point for the roll server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-sheet",
	Short: "D&D 5e roll server",
	Long:  `rpg-sheet rolls checks, attacks, damage and healing for character sheets and shares them with the table.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
