// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/image-collector/pkg/types"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.LogConfig
		wantErr bool
	}{
		{name: "defaults", cfg: types.LogConfig{}},
		{name: "console debug", cfg: types.LogConfig{Level: "debug", Format: "console"}},
		{name: "json info", cfg: types.LogConfig{Level: "info", Format: "JSON"}},
		{name: "unsupported format", cfg: types.LogConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported log format")
				return
			}
			require.NoError(t, err)

			logger := p.Logger("exporter")
			require.NotNil(t, logger)
			logger.Debug("provider.initialised", "component", "exporter")
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"TRACE":   glog.Trace,
		" debug ": glog.Debug,
		"info":    glog.Info,
		"warning": glog.Warn,
		"error":   glog.Error,
		"verbose": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeLevel(in), "level %q", in)
	}
}

func TestNilProviderFallsBackToNoOp(t *testing.T) {
	var p *Provider
	logger := p.Logger("anything")
	assert.Equal(t, NoOp(), logger)
}
