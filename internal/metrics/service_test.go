package metrics_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/metrics"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

func TestObserveRequest(t *testing.T) {
	s, err := metrics.New(config.DefaultServiceConfigFromEnv())
	require.NoError(t, err)

	s.ObserveRequest(keystore.ChainFamilyEVM, "eth_chainId", nil)
	s.ObserveRequest(keystore.ChainFamilyEVM, "eth_chainId", nil)
	s.ObserveRequest(keystore.ChainFamilyEVM, "personal_sign", errors.New("boom"))
	s.ObserveRequest(keystore.ChainFamilyEVM, "eth_foo", errors.Wrap(evm.ErrUnsupportedMethod, "eth_foo"))

	assert.InDelta(t, 2, s.RequestCount(keystore.ChainFamilyEVM, "eth_chainId", metrics.OutcomeOK), 0)
	assert.InDelta(t, 1, s.RequestCount(keystore.ChainFamilyEVM, "personal_sign", metrics.OutcomeRejected), 0)
	assert.InDelta(t, 1, s.RequestCount(keystore.ChainFamilyEVM, "unsupported", metrics.OutcomeRejected), 0)
	assert.InDelta(t, 0, s.RequestCount(keystore.ChainFamilyEVM, "eth_foo", metrics.OutcomeRejected), 0)
}

func TestObserveEvent(t *testing.T) {
	s, err := metrics.New(config.DefaultServiceConfigFromEnv())
	require.NoError(t, err)

	s.ObserveEvent(keystore.ChainFamilySolana, events.ConnectEvent{PublicKey: "x"})
	s.ObserveEvent(keystore.ChainFamilySolana, events.AccountsChangedEvent{})

	assert.InDelta(t, 1, s.EventCount(keystore.ChainFamilySolana, events.Connect), 0)
	assert.InDelta(t, 0, s.EventCount(keystore.ChainFamilyEVM, events.Connect), 0)

	families, err := s.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "mockwallet_events_total")
}
