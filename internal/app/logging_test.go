package app_test

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"msigctl/internal/app"
)

func TestNewLogger(t *testing.T) {
	t.Cleanup(func() { log.SetDefault(log.NewLogger(log.DiscardHandler())) })

	cases := map[string]struct {
		Level   string
		Debug   bool
		Warn    bool
		WantErr bool
	}{
		"trace":       {Level: "trace", Debug: true, Warn: true},
		"debug":       {Level: "debug", Debug: true, Warn: true},
		"info":        {Level: "info", Warn: true},
		"warn":        {Level: "WARN", Warn: true},
		"error":       {Level: "error"},
		"bad level":   {Level: "loud", WantErr: true},
		"empty level": {Level: "", WantErr: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := app.NewLogger(&buf, tc.Level)
			if tc.WantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "unknown log level")
				require.Nil(t, logger)
				return
			}
			require.NoError(t, err)

			logger.Debug("debug line")
			require.Equal(t, tc.Debug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			logger.Warn("warn line")
			require.Equal(t, tc.Warn, bytes.Contains(buf.Bytes(), []byte("warn line")))
		})
	}
}
