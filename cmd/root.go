package cmd

import (
	"fmt"
	"os"

	"github.com/davidcollom/denvr-catalog/pkg/catalog"
	"github.com/davidcollom/denvr-catalog/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	opts     = &catalogOptions{}
)

var rootCmd = &cobra.Command{
	Use:   "denvr-catalog",
	Short: "Generate the Denvr Cloud VM catalog",
	Long: `Fetch VM availability and pricing for every Denvr Cloud cluster and write it as a CSV catalog.

If --username or --password is not given, the credentials are read from the
` + catalog.UsernameEnv + ` and ` + catalog.PasswordEnv + ` environment variables.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logger.SetLogLevel(logLevel); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCatalog(cmd.Context(), opts, os.Getenv, cmd.OutOrStdout()); err != nil {
			logger.Fatalf("[!] %s", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set the log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&opts.username, "username", "", "Denvr Cloud username (email address)")
	rootCmd.Flags().StringVar(&opts.password, "password", "", "Denvr Cloud password")
	rootCmd.Flags().StringVar(&opts.output, "output", catalog.DefaultOutputPath, "Path to output CSV file")
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "Path to a YAML file overriding clusters, GPU table or API endpoint")
	rootCmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a per-cluster summary table after writing the catalog")
	rootCmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr while fetching clusters")
}
