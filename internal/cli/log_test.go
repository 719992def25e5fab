package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LogTestSuite struct {
	suite.Suite
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) TestLogFatal() {
	tests := []struct {
		name      string
		message   string
		err       error
		kvPairs   []any
		wantInLog []string
	}{
		{
			name:      "when error is provided logs error",
			message:   "failed to start process",
			err:       fmt.Errorf("exec: \"nodez\": executable file not found"),
			wantInLog: []string{"failed to start process", "executable file not found"},
		},
		{
			name:      "when error is nil logs without error key",
			message:   "scenario failed",
			wantInLog: []string{"scenario failed"},
		},
		{
			name:      "when extra kv pairs are provided logs them",
			message:   "failed to read config",
			err:       fmt.Errorf("open /etc/clidrive.yaml: no such file"),
			kvPairs:   []any{"config", "/etc/clidrive.yaml"},
			wantInLog: []string{"failed to read config", "no such file", "config", "/etc/clidrive.yaml"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var exitCode int
			originalExit := osExit
			osExit = func(code int) { exitCode = code }
			defer func() { osExit = originalExit }()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			LogFatal(logger, tc.message, tc.err, tc.kvPairs...)

			assert.Equal(suite.T(), 1, exitCode)
			output := buf.String()
			for _, want := range tc.wantInLog {
				assert.Contains(suite.T(), output, want)
			}
			if tc.err == nil {
				assert.NotContains(suite.T(), output, "error=")
			}
		})
	}
}

func (suite *LogTestSuite) TestNewLogger() {
	tests := []struct {
		name      string
		debug     bool
		json      bool
		wantDebug bool
		wantIn    string
	}{
		{
			name:   "when text logs through tint",
			wantIn: "process exited",
		},
		{
			name:      "when debug enables debug level",
			debug:     true,
			wantDebug: true,
			wantIn:    "process exited",
		},
		{
			name:   "when json emits json records",
			json:   true,
			wantIn: `"msg":"process exited"`,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tc.debug, tc.json)

			logger.Info("process exited", slog.Int("exit_code", 0))
			logger.Debug("input sent", slog.Int("index", 0))

			output := buf.String()
			assert.Contains(suite.T(), output, tc.wantIn)
			assert.Equal(suite.T(), tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("input sent")))
		})
	}
}
