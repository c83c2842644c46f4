package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <season>",
		Short: "Check a season's fixture file without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := prepare(cfg, args[0])
	if err != nil {
		return err
	}

	home := 0
	for _, f := range b.fixtures {
		if f.Home() {
			home++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "'%s' is valid: %d fixtures (%d home, %d away) for season %s\n",
		b.input, len(b.fixtures), home, len(b.fixtures)-home, b.season)
	return nil
}
