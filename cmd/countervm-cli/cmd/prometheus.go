// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
)

func newPrometheusCmd() *cobra.Command {
	var (
		target         string
		baseURI        string
		openBrowser    bool
		prometheusFile string
	)
	cmd := &cobra.Command{
		Use:         "prometheus",
		Short:       "Write a prometheus config scraping a running sandbox",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		RunE: func(*cobra.Command, []string) error {
			if len(target) == 0 {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				target = cfg.GetListenAddress()
			}
			return cli.GeneratePrometheus(target, baseURI, openBrowser, prometheusFile)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "host:port of the sandbox (defaults to the configured listen address)")
	cmd.Flags().StringVar(&baseURI, "prometheus-base-uri", "http://localhost:9090", "prometheus server location")
	cmd.Flags().BoolVar(&openBrowser, "prometheus-open-browser", true, "open the dashboard in a browser")
	cmd.Flags().StringVar(&prometheusFile, "prometheus-file", "/tmp/countervm-prometheus.yaml", "prometheus config file location")
	return cmd
}
