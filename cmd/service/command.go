package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/logic/v1/process"
	"github.com/breeew/folio-api/internal/seed"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

type Options struct {
	ConfigPath string
	Seed       bool
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	// Add flags for generic options
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config, read from env when empty")
	flagSet.BoolVar(&o.Seed, "seed", false, "write sample content into empty collections before serving")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "folio api service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Seed {
		written, err := seed.Apply(ctx, app.Store())
		if err != nil {
			return err
		}
		slog.Info("seed applied", slog.Any("keys", written))
	}

	videos := process.StartVideoProcess(app)
	defer videos.Stop()

	return serve(ctx, app, videos)
}

// serve 阻塞直到收到退出信号，长连接 (sse / websocket) 通过 BaseContext 感知关闭
func serve(ctx context.Context, app *core.Core, videos *process.VideoProcess) error {
	httpSrv := NewHttpSrv(app, videos)

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := &http.Server{
		Addr:              app.Cfg().Addr,
		Handler:           httpSrv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown http server gracefully", slog.String("error", err.Error()))
		return err
	}
	return nil
}
