package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFormat(t *testing.T) {
	tests := []struct {
		format string
		value  string
		want   bool
	}{
		{"uuid", "ef3c74ba-2d10-4a55-8c1e-6f1b0e9d7a42", true},
		{"uuid", "not-a-uuid", false},
		{"uuid", "ef3c74ba2d104a558c1e6f1b0e9d7a42", true}, // uuid.Parse accepts unhyphenated
		{"email", "ops@partner.example", true},
		{"email", "ops@localhost", false},
		{"email", "not-an-address", false},
		{"date", "2024-02-29", true},
		{"date", "2024-13-01", false},
		{"date-time", "2024-02-29T12:00:00Z", true},
		{"datetime", "2024-02-29 12:00:00", true},
		{"uri", "https://partner.example/v1", true},
		{"uri", "not a uri", false},
		{"ipv4", "10.0.0.1", true},
		{"ipv4", "::1", false},
		{"ipv6", "::1", true},
		{"hostname", "api.partner.example", true},
		{"hostname", "-bad-.example", false},
		{"no-such-format", "anything", true}, // unknown formats pass
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchFormat(tt.format, tt.value))
		})
	}
}

func TestRegisterFormat(t *testing.T) {
	RegisterFormat("company-code", func(v string) bool {
		return len(v) == 4
	})

	assert.True(t, MatchFormat("company-code", "ACME"))
	assert.False(t, MatchFormat("company-code", "ACME-CORP"))
}
