package probe

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/test"
)

func TestProbeAgainstServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		srv := httptest.NewServer(s.Echo)
		defer srv.Close()

		cfg := s.Config
		cfg.Echo.ListenAddress = strings.TrimPrefix(srv.URL, "http://")
		cfg.Management.ProbeReadinessTimeout = time.Second

		require.NoError(t, probe(t.Context(), cfg, "/-/healthy", true))
		require.NoError(t, probe(t.Context(), cfg, "/-/ready", false))

		s.Wallet.Destroy(t.Context())

		require.NoError(t, probe(t.Context(), cfg, "/-/healthy", false))
		err := probe(t.Context(), cfg, "/-/ready", false)
		require.ErrorIs(t, err, ErrProbeFailed)
		assert.Contains(t, err.Error(), "521")
	})
}

func TestProbeBaseURL(t *testing.T) {
	cfg := config.Server{}
	cfg.Echo.ListenAddress = ":8787"
	assert.Equal(t, "http://127.0.0.1:8787", probeBaseURL(cfg))

	cfg.Echo.ListenAddress = ""
	cfg.Echo.BaseURL = "http://wallet.local"
	assert.Equal(t, "http://wallet.local", probeBaseURL(cfg))
}

func TestProbeUnreachable(t *testing.T) {
	cfg := config.Server{}
	cfg.Echo.ListenAddress = "127.0.0.1:1"
	cfg.Management.ProbeReadinessTimeout = 200 * time.Millisecond

	require.Error(t, probe(t.Context(), cfg, "/-/healthy", false))
}
