package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the sellerbridge application
var rootCmd = &cobra.Command{
	Use:   "sellerbridge",
	Short: "MCP bridge to the Amazon Selling Partner API",
	Long: `sellerbridge is an MCP (Model Context Protocol) server that lets AI
assistants work with Amazon Seller accounts: orders, FBA inventory,
reports, financial events and inbound shipments.

Sellers connect their account once via the Login with Amazon consent
flow; access tokens are stored per user and refreshed automatically.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sellerbridge version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
