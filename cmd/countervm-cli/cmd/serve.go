// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/countervm/api/jsonrpc"
	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/utils"
)

func newServeCmd() *cobra.Command {
	var allowedOrigins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API and metrics of the sandbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, handler, allowedOrigins)
		},
	}
	cmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", []string{"*"}, "origins allowed by CORS")
	return cmd
}

// serve blocks until [ctx] is done or the server fails.
func serve(ctx context.Context, h *cli.Handler, allowedOrigins []string) error {
	log := h.Log()
	listener, err := net.Listen("tcp", h.Config().GetListenAddress())
	if err != nil {
		return err
	}
	srv := server.New(log, listener, server.NewDefaultHTTPConfig(), allowedOrigins, server.DefaultShutdownTimeout)

	rpc, err := jsonrpc.NewHandler(log, h.Ledger())
	if err != nil {
		_ = listener.Close()
		return err
	}
	srv.AddRoute(rpc.Handler, rpc.Path)
	srv.AddRoute(promhttp.HandlerFor(h.Gatherer(), promhttp.HandlerOpts{}), cli.MetricsPath)

	utils.Outf("{{green}}serving on:{{/}} http://%s\n", srv.Addr())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server", zap.Error(context.Cause(gctx)))
		return srv.Shutdown()
	})
	return g.Wait()
}
