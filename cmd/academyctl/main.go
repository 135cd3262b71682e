package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "academyctl",
	Short:         "Strumenti di servizio del calendario dell'accademia",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN (env DB_DSN)")
	rootCmd.PersistentFlags().String("migrations", "./migrations", "migrations directory (env MIGRATIONS_PATH)")
	rootCmd.PersistentFlags().String("roster", "", "roster file: yaml, json or toml (env ROSTER_PATH)")

	for key, flag := range map[string]string{"db_dsn": "dsn", "migrations_path": "migrations", "roster_path": "roster"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newHolidaysCmd(), newEndDateCmd(), newMigrateCmd(), newRosterCmd(), newParseCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "errore:", err)
		os.Exit(1)
	}
}
