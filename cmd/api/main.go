package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "pets-mvc",
		Short:        "Servidor MVC de gatos y perros",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, cmd.Flags())
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "archivo de config (yaml/json/toml)")
	cmd.PersistentFlags().Int("port", 0, "puerto HTTP (default 3000, env PORT/NODE_PORT)")
	cmd.Flags().String("store", "", "backend: mongo|postgres|sqlite|dynamodb|redis|memory")
	cmd.Flags().String("log-level", "", "debug|info|warn|error")

	cmd.AddCommand(newHealthcheckCmd(&configPath))
	return cmd
}
