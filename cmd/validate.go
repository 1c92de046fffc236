package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the hearth config file against its schema",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No config file at %s; defaults apply.\n", path)
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	problems, err := config.ValidateYAML(data)
	if err != nil {
		return err
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("validation failed: %d error(s)", len(problems))
	}

	fmt.Println("Configuration is valid.")
	return nil
}
