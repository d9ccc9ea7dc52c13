// Command couture serves the boutique site and manages its admin accounts.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaayatricouture/couture/internal/config"
)

var (
	// Global flags
	dbPath string

	cfg    *config.Config
	logger zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "couture",
	Short: "Gaayatri's Couture boutique site",
	Long: `couture serves the boutique's marketing site, catalog and admin pages.

Configuration is read from the environment (and a .env file when present).
Run "couture init" once to create the database and the first admin account.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		logger = config.NewLogger(cfg.Logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (overrides DB_PATH)")

	rootCmd.AddCommand(serveCmd, initCmd, userCmd)
	userCmd.AddCommand(userAddCmd, userPasswdCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
