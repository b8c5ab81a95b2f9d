package server_test

import (
	"testing"

	"item-matcher/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_MasterKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"Empty", "", nil},
		{"Single", "secret", []string{"secret"}},
		{"Multiple", "a,b,c", []string{"a", "b", "c"}},
		{"TrimsWhitespace", " a , b ", []string{"a", "b"}},
		{"DropsEmptyEntries", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{MasterApiKeys: tt.raw}
			assert.Equal(t, tt.want, c.MasterKeys())
		})
	}
}
