package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		port    int
		wantErr bool
	}{
		{"valid", "example.com", 3000, false},
		{"subdomain", "api.example.com", 8080, false},
		{"empty domain", "", 3000, true},
		{"bare hostname", "localhost", 3000, true},
		{"injection attempt", "example.com;id", 3000, true},
		{"port zero", "example.com", 0, true},
		{"port too large", "example.com", 70000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.domain, tt.port)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.domain, s.Domain())
			assert.Equal(t, tt.port, s.Port())
		})
	}
}

func TestSite_Upstream(t *testing.T) {
	s, err := New("example.com", 3000)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", s.Upstream())
}

func TestStaticProber(t *testing.T) {
	prober := &StaticProber{Bound: map[int]bool{3000: true}}

	assert.True(t, prober.Listening(context.Background(), 3000))
	assert.False(t, prober.Listening(context.Background(), 3001))
}

func TestDialProber_NothingListening(t *testing.T) {
	// Port 1 on loopback is essentially never bound in a test environment.
	prober := NewDialProber()
	assert.False(t, prober.Listening(context.Background(), 1))
}
