package logsvc

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core"
)

func newTestLogger(debug bool) (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	std := log.New(&buf, "", 0)
	return NewRollbarLogger(std, &core.Config{Env: "TEST", TestMode: true, Debug: debug}), &buf
}

func TestRollbarLogger_print(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		log   func(l *RollbarLogger)
		want  string
	}{
		{
			name: "info with data",
			log: func(l *RollbarLogger) {
				l.Info("student added", map[string]interface{}{"name": "Alice", "id": 1})
			},
			want: "INFO student added id=1 name=Alice\n",
		},
		{
			name: "warn with error",
			log: func(l *RollbarLogger) {
				l.Warn("could not load", errors.New("boom"))
			},
			want: "WARN could not load error=\"boom\"\n",
		},
		{
			name: "debug hidden",
			log:  func(l *RollbarLogger) { l.Debug("noise") },
			want: "",
		},
		{
			name:  "debug shown",
			debug: true,
			log:   func(l *RollbarLogger) { l.Debug("noise") },
			want:  "DEBUG noise\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(tt.debug)
			tt.log(l)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewStdLogger_logFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "msms.log")
	var out bytes.Buffer

	std, closer, err := NewStdLogger(&out, "", path)
	require.NoError(t, err)
	std.Println("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, out.String(), "hello")
}
