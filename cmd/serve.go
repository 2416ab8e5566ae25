package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		srv := server.New(server.Options{
			Learner:        e.learner,
			Articles:       e.store.Articles(),
			Attempts:       e.store.Attempts(),
			Logger:         e.logger.Named("server"),
			MaxUploadBytes: e.cfg.Server.MaxUploadBytes,
		})
		e.logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("summarize", e.cfg.Routes.Summarize.Provider),
			zap.String("translate", e.cfg.Routes.Translate.Provider),
			zap.String("quiz", e.cfg.Routes.Quiz.Provider))
		return srv.ListenAndServe(cmd.Context(), addr, e.cfg.Server.ReadTimeout, e.cfg.Server.WriteTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
