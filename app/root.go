// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webfolio",
	Short: "webfolio serves a personal portfolio website",
	Long: `webfolio serves a personal portfolio website: public profile and
project pages, a contact form, an admin API for content management and a
reactive subscription endpoint for live query results.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
