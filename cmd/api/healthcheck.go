package main

import (
	"fmt"
	"strconv"
	"time"

	"pets-mvc/internal/config"
	"pets-mvc/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

// healthcheck sirve para el HEALTHCHECK del contenedor: exit 0 si /health responde ok.
func newHealthcheckCmd(configPath *string) *cobra.Command {
	var (
		host    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Consulta /health del server local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			httpCfg, err := config.LoadHTTP(*configPath, cmd.Flags())
			if err != nil {
				return err
			}

			client, err := httpclient.New("http://"+host+":"+strconv.Itoa(httpCfg.Port), timeout)
			if err != nil {
				return err
			}

			var out struct {
				Status string `json:"status"`
				Store  string `json:"store"`
			}
			if err := client.GetJSON(cmd.Context(), "/health", &out); err != nil {
				return err
			}
			if out.Status != "ok" {
				return fmt.Errorf("unhealthy: status=%q", out.Status)
			}
			cmd.Printf("ok (store=%s)\n", out.Store)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host del server")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "timeout del request")
	return cmd
}
