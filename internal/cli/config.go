package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopfront/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the shopfront config file",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := config.NewConfigService(cfgFile)
		if _, err := os.Stat(svc.Path()); err == nil && !configInitForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", svc.Path())
		}

		cfg := config.DefaultConfig()
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		if err := svc.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(cfgFile).Path())
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
