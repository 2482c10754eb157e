package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAddrs(t *testing.T) {
	tests := map[string]struct {
		input string
		want  []string
	}{
		"Empty": {
			input: "",
			want:  []string{},
		},
		"Single": {
			input: "10.0.0.1:7946",
			want:  []string{"10.0.0.1:7946"},
		},
		"MultipleWithSpaces": {
			input: " 10.0.0.1:7946, ,10.0.0.2:7946 ",
			want:  []string{"10.0.0.1:7946", "10.0.0.2:7946"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, parseAddrs(tt.input))
		})
	}
}
