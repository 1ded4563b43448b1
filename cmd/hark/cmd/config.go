package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/hark/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Prints the merged configuration (file over defaults) as YAML.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(flagConfig); statErr == nil {
		fmt.Printf("%s# %s%s\n", colorGray, flagConfig, colorReset)
	} else {
		fmt.Printf("%s# defaults (no file at %s)%s\n", colorGray, flagConfig, colorReset)
	}
	fmt.Print(string(data))
	return nil
}
