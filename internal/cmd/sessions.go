package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/bazaar/internal/config"
	"github.com/talgya/bazaar/internal/persistence"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored negotiation outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := persistence.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		rows, err := db.Recent(sessionsLimit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("no sessions stored yet")
			return nil
		}

		for _, row := range rows {
			price := "-"
			if row.Status == "accepted" {
				price = "₹" + humanize.Comma(int64(row.FinalPrice))
			}
			fmt.Printf("%s  %-20s %-8s %-9s %2d rounds  %s\n",
				row.CreatedAt, row.ProductName, row.Grade, row.Status, row.Rounds, price)
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "maximum sessions to list")
	rootCmd.AddCommand(sessionsCmd)
}
