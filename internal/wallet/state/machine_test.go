package state_test

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

var addresses = []string{"a0", "a1", "a2"}

func newMachine(t *testing.T) *state.Machine {
	t.Helper()

	m, err := state.NewMachine(addresses)
	require.NoError(t, err)
	return m
}

func TestNewMachineRequiresAccounts(t *testing.T) {
	_, err := state.NewMachine(nil)
	assert.True(t, errors.Is(err, state.ErrNoAccounts))
}

func TestConnectDisconnect(t *testing.T) {
	m := newMachine(t)
	assert.Equal(t, state.StatusDisconnected, m.Status())
	assert.Equal(t, []string{}, m.Accounts())

	transitioned, ordered := m.Connect()
	assert.True(t, transitioned)
	assert.Equal(t, addresses, ordered)
	assert.Equal(t, addresses, m.Accounts())

	transitioned, _ = m.Connect()
	assert.False(t, transitioned)

	assert.True(t, m.Disconnect())
	assert.Equal(t, []string{}, m.Accounts())
	assert.False(t, m.Connected())

	// second disconnect is a no-op
	assert.False(t, m.Disconnect())
	assert.Equal(t, []string{}, m.Accounts())
}

func TestSwitchAccountOrdering(t *testing.T) {
	m := newMachine(t)

	changed, ordered, connected, err := m.SwitchAccount(2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, connected)
	assert.Equal(t, []string{"a2", "a0", "a1"}, ordered)

	assert.Equal(t, []string{}, m.Accounts())

	m.Connect()
	assert.Equal(t, []string{"a2", "a0", "a1"}, m.Accounts())

	info := m.Info()
	assert.Equal(t, 2, info.CurrentIndex)
	assert.Equal(t, addresses, info.Accounts)

	changed, _, connected, err = m.SwitchAccount(2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, connected)

	address, index := m.Active()
	assert.Equal(t, "a2", address)
	assert.Equal(t, 2, index)
}

func TestSwitchAccountOutOfRange(t *testing.T) {
	m := newMachine(t)

	for _, index := range []int{-1, 3} {
		_, _, _, err := m.SwitchAccount(index)
		assert.True(t, errors.Is(err, state.ErrIndexOutOfRange))
	}

	assert.Equal(t, 0, m.Info().CurrentIndex)
}

func TestRequireConnected(t *testing.T) {
	m := newMachine(t)

	_, _, err := m.RequireConnected()
	assert.True(t, errors.Is(err, state.ErrNotConnected))

	m.Connect()
	_, _, _, err = m.SwitchAccount(1)
	require.NoError(t, err)

	address, index, err := m.RequireConnected()
	require.NoError(t, err)
	assert.Equal(t, "a1", address)
	assert.Equal(t, 1, index)
}

func TestMachineIsolatedFromInput(t *testing.T) {
	input := []string{"x", "y"}
	m, err := state.NewMachine(input)
	require.NoError(t, err)

	input[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, m.Info().Accounts)

	info := m.Info()
	info.Accounts[1] = "mutated"
	assert.Equal(t, []string{"x", "y"}, m.Info().Accounts)
}

func TestConcurrentSwitchAndRead(t *testing.T) {
	m := newMachine(t)
	m.Connect()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _, _ = m.SwitchAccount(i % len(addresses))
		}()
		go func() {
			defer wg.Done()
			accounts := m.Accounts()
			assert.Len(t, accounts, len(addresses))
		}()
	}
	wg.Wait()
}
