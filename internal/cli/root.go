// Package cli wires the cobra commands.
package cli

import (
	"github.com/spf13/cobra"

	"animeflix/catalog/internal/config"
	"animeflix/catalog/internal/container"
)

type options struct {
	configPath string
}

// NewRootCommand builds the animeflix command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "animeflix",
		Short:         "Search and browse the anime catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (default ./config.yaml)")

	root.AddCommand(
		newServeCommand(opts),
		newSearchCommand(opts),
		newInfoCommand(opts),
	)
	return root
}

func (o *options) build(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return container.New(cmd.Context(), cfg)
}
