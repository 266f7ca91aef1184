package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gatestack/internal/server"
)

// serveCommand creates the serve command for running the HTTP server.
// All server settings come from GATESTACK_* environment variables; the
// --addr flag overrides the listen address for quick local runs.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv, err := server.New(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides GATESTACK_ADDR)")

	return cmd
}
