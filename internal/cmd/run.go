package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/bazaar/internal/agent"
	"github.com/talgya/bazaar/internal/config"
	"github.com/talgya/bazaar/internal/persistence"
	"github.com/talgya/bazaar/internal/product"
	"github.com/talgya/bazaar/internal/report"
	"github.com/talgya/bazaar/internal/session"
)

// testProducts is the standard lot grid for batch runs.
var testProducts = []product.Product{
	{
		Name:        "Alphonso Mangoes",
		Category:    "Mangoes",
		Quantity:    100,
		Grade:       product.GradeA,
		Origin:      "Ratnagiri",
		MarketPrice: 180000,
		Attributes:  map[string]string{"ripeness": "optimal", "export_grade": "true"},
	},
	{
		Name:        "Kesar Mangoes",
		Category:    "Mangoes",
		Quantity:    150,
		Grade:       product.GradeB,
		Origin:      "Gujarat",
		MarketPrice: 150000,
		Attributes:  map[string]string{"ripeness": "semi-ripe", "export_grade": "false"},
	},
}

var runTranscript bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scenario batch and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		var db *persistence.DB
		if cfg.DBPath != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
				slog.Warn("persistence disabled", "error", err)
			} else if db, err = persistence.Open(cfg.DBPath); err != nil {
				slog.Warn("persistence disabled", "error", err)
				db = nil
			}
		}
		if db != nil {
			defer db.Close()
		}

		scenarios := cfg.Scenarios
		if len(scenarios) == 0 {
			scenarios = config.DefaultScenarios()
		}

		var outcomes []session.Outcome
		seed := cfg.Seed
		for _, p := range testProducts {
			for _, sc := range scenarios {
				budget := int(float64(p.MarketPrice) * sc.BudgetRatio)
				floor := int(float64(p.MarketPrice) * sc.FloorRatio)

				buyer := agent.NewBuyer("Strategist", agent.RandomPhrases(seed))
				seller := agent.NewSeller("Persuader", agent.RandomPhrases(seed+1))
				seed += 2

				sess := session.New(p, budget, floor, buyer, seller)
				if cfg.MaxRounds > 0 {
					sess.MaxRounds = cfg.MaxRounds
					buyer.SetRounds(cfg.MaxRounds)
					seller.SetRounds(cfg.MaxRounds)
				}
				outcome := sess.Run()
				outcomes = append(outcomes, outcome)

				label := fmt.Sprintf("%s/%s", p.Name, sc.Name)
				fmt.Println(report.Line(label, outcome))
				if runTranscript {
					fmt.Print(report.Transcript(outcome))
				}

				if db != nil {
					if err := db.Save(outcome); err != nil {
						slog.Error("save session failed", "id", outcome.ID, "error", err)
					}
				}
			}
		}

		fmt.Println(report.Summary(outcomes))
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runTranscript, "transcript", "t", false, "print full conversation transcripts")
	rootCmd.AddCommand(runCmd)
}
