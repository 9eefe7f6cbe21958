package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	settingsPath    string
	dataDir         string
	reconfigureFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "timebg",
	Short: "Change the desktop background by time of day",
	Long: `timebg splits the day into time ranges and shows the image assigned to
the current range as the desktop background. On first start it asks for
the time points and images, then keeps running with a tray icon.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reconfigureFlag {
			return runReconfigure(cmd, args)
		}
		return runApp(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default timebg.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the configuration documents")
	rootCmd.Flags().BoolVar(&reconfigureFlag, "reconfigure", false, "open the reconfiguration tool")
	_ = rootCmd.Flags().MarkHidden("reconfigure")

	rootCmd.AddCommand(reconfigureCmd)
	rootCmd.AddCommand(statusCmd)
}
