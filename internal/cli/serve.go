package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/internal/server"
	"github.com/matzehuels/dreamhouse/pkg/observability"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
)

// serveCommand runs the HTTP API and the websocket preview.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noPublish bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}

			cc, err := newCache(ctx, cfg.Cache, false)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cfg.Cache.Keyer(), c.Logger)
			defer runner.Close()

			parser, err := c.newParser(ctx, cfg, "", cc)
			if err != nil {
				return err
			}
			designs, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer designs.Close()

			deps := server.Deps{
				Runner:   runner,
				Parser:   parser,
				Store:    designs,
				Logger:   c.Logger,
				Defaults: cfg.RenderOptions(),
				Config:   cfg.Server,
			}
			if !noPublish {
				arts, err := openArtifacts(cfg.Artifacts)
				if err != nil {
					return err
				}
				deps.Artifacts = arts
			}

			observability.NewLogHooks(c.Logger).Register()
			defer observability.Reset()

			c.Logger.Info("starting server",
				"store", cfg.Store.Backend,
				"cache", cfg.Cache.Backend,
				"parser", parser.Name(),
				"artifacts", cfg.Artifacts.Backend)
			return server.New(deps).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "disable the publish endpoint")
	return cmd
}
