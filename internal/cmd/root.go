// Package cmd wires the bazaar command tree.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talgya/bazaar/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bazaar",
	Short: "Bilateral price negotiation simulator",
	Long: `Bazaar simulates multi-round price negotiations between a buyer and
a seller strategy agent, each with a fixed personality, exchanging
integer offers and messages until a deal is accepted or the round
cap runs out.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./bazaar.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bazaar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/bazaar")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BAZAAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}
