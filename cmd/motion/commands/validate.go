package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion/script"
)

func loadScript(path string) (*script.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return script.Parse(data)
}

// validate <script>: parse a script and report problems.
func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <script>",
		Short: "Check a YAML animation script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScript(args[0])
			if err != nil {
				return err
			}
			name := s.Name
			if name == "" {
				name = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d keys)\n", name, len(s.State))
			return nil
		},
	}
	return cmd
}
