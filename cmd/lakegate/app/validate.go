package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakegate/lakegate/pkg/authz"
)

var validateCmd = &cobra.Command{
	Use:   "validate <policy-file>",
	Short: "Validate a Cedar policy file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if _, err := authz.NewCedarEngineFromFile(args[0]); err != nil {
			return err
		}
		fmt.Println("policy file is valid")
		return nil
	},
}
