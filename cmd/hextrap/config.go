package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration hextrap would use, as YAML.

The file is looked up in this order: --config, ~/.hextrap/configs/hextrap.yaml,
./configs/hextrap.yaml, then the built-in defaults.

Examples:
  hextrap config
  hextrap config --defaults > ./configs/hextrap.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
