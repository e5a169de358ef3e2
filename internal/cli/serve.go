package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/queryshv/rad-report/internal/api"
	"github.com/queryshv/rad-report/internal/export"
	"github.com/queryshv/rad-report/internal/notify"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server for the report form and the admin console.

The listen address comes from server.addr (or PORT). The server stops
gracefully on SIGINT or SIGTERM.

Example:
  radreport serve
  RADREPORT_STORE_DRIVER=sqlite radreport serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			mailer := notify.NewMailer(notify.SMTPConfig{
				Host: a.cfg.SMTP.Host,
				Port: a.cfg.SMTP.Port,
				User: a.cfg.SMTP.User,
				Pass: a.cfg.SMTP.Pass,
				From: a.cfg.SMTP.From,
			}, a.log)
			if !mailer.Enabled() {
				a.log.Info("report email disabled: SMTP not configured")
			}

			server := api.New(api.Deps{
				Store:    store,
				Sessions: api.NewSessions(a.cfg.Admin.Password, a.cfg.Admin.SessionTTL),
				Mailer:   mailer,
				PDF:      export.PDFOptions{FontPath: a.cfg.PDF.FontPath},
				Log:      a.log,
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			go func() {
				select {
				case sig := <-sigCh:
					a.log.Info("signal received", zap.String("signal", sig.String()))
					cancel()
				case <-ctx.Done():
				}
			}()

			return server.Run(ctx, a.cfg.Server.Addr, a.cfg.Server.ShutdownTimeout)
		},
	}
}
