package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "down", key: "down", want: "\x1b\x5b\x42"},
		{name: "up", key: "up", want: "\x1b\x5b\x41"},
		{name: "enter", key: "enter", want: "\x0d"},
		{name: "return alias", key: "return", want: Enter},
		{name: "space", key: "space", want: "\x20"},
		{name: "case insensitive", key: "ENTER", want: Enter},
		{name: "ctrl-c", key: "ctrl-c", want: "\x03"},
		{name: "unknown", key: "hyper", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyNamesSorted(t *testing.T) {
	names := KeyNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "enter")
	assert.Contains(t, names, "down")
}
