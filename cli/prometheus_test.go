// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestGeneratePrometheus(t *testing.T) {
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "prometheus.yaml")
	require.NoError(GeneratePrometheus("127.0.0.1:9650", "http://localhost:9090", false, file))

	b, err := os.ReadFile(file)
	require.NoError(err)
	var cfg PrometheusConfig
	require.NoError(yaml.Unmarshal(b, &cfg))
	require.Len(cfg.ScrapeConfigs, 1)
	require.Equal(MetricsPath, cfg.ScrapeConfigs[0].MetricsPath)
	require.Equal([]string{"127.0.0.1:9650"}, cfg.ScrapeConfigs[0].StaticConfigs[0].Targets)
}

func TestDashboardURL(t *testing.T) {
	require := require.New(t)

	dashboard := DashboardURL("http://localhost:9090", []string{"a", "b"})
	require.True(strings.HasPrefix(dashboard, "http://localhost:9090/graph?g0.expr=a&"))
	require.Contains(dashboard, "&g1.expr=b&g1.tab=0")
	require.Less(strings.Index(dashboard, "g0."), strings.Index(dashboard, "g1."))
}
