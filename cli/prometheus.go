// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/utils"
)

const (
	fsModeWrite = 0o600

	// MetricsPath is where serve exposes the metrics of the handler.
	MetricsPath = "/metrics"
)

// Panels of the pre-built dashboard, in display order.
var Panels = []string{
	"sum by (kind) (increase(ledger_messages[1m]))",
	"sum by (exit_code) (increase(ledger_failures[1m]))",
	"increase(ledger_credited[1m])/1000000000",
	"increase(ledger_withdrawn[1m])/1000000000",
	"increase(ledger_fees[1m])/1000000000",
	"pebble_disk_space_usage",
}

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// NewPrometheusConfig scrapes the metrics served at [target] (host:port).
func NewPrometheusConfig(target string) *PrometheusConfig {
	var prometheusConfig PrometheusConfig
	prometheusConfig.Global.ScrapeInterval = "1s"
	prometheusConfig.Global.EvaluationInterval = "1s"
	prometheusConfig.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName: "countervm",
			StaticConfigs: []*PrometheusStaticConfig{
				{
					Targets: []string{target},
				},
			},
			MetricsPath: MetricsPath,
		},
	}
	return &prometheusConfig
}

// DashboardURL links the graph page of [baseURI] with [panels] preloaded.
//
// Params are encoded by hand because prometheus skips panels that are not
// numerically sorted and [url.Values] only sorts lexicographically.
func DashboardURL(baseURI string, panels []string) string {
	dashboard := baseURI + "/graph"
	for i, panel := range panels {
		appendChar := "&"
		if i == 0 {
			appendChar = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", dashboard, appendChar, i, url.QueryEscape(panel), i, i, i)
	}
	return dashboard
}

// GeneratePrometheus writes a prometheus config scraping the sandbox served
// at [target] and prints or opens the dashboard on [baseURI].
func GeneratePrometheus(target string, baseURI string, openBrowser bool, prometheusFile string) error {
	yamlData, err := yaml.Marshal(NewPrometheusConfig(target))
	if err != nil {
		return err
	}
	if err := os.WriteFile(prometheusFile, yamlData, fsModeWrite); err != nil {
		return err
	}
	utils.Outf("{{green}}prometheus config:{{/}} %s\n", prometheusFile)
	utils.Outf("{{green}}prometheus cmd:{{/}} prometheus --config.file=%s\n", prometheusFile)

	dashboard := DashboardURL(baseURI, Panels)
	if !openBrowser {
		utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
		return nil
	}
	utils.Outf("{{cyan}}opening dashboard{{/}}\n")
	return browser.OpenURL(dashboard)
}
