package events_test

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/wallet/events"
)

func TestEmitOrderAndPayload(t *testing.T) {
	e := events.NewEmitter("evm")

	var got []events.Event
	record := func(ev events.Event) error {
		got = append(got, ev)
		return nil
	}

	e.On(events.Connect, record)
	e.On(events.AccountsChanged, record)

	e.Emit(events.ConnectEvent{ChainID: "0x1"})
	e.Emit(events.AccountsChangedEvent{Accounts: []string{"0xabc"}})

	require.Len(t, got, 2)
	assert.Equal(t, events.ConnectEvent{ChainID: "0x1"}, got[0])
	assert.Equal(t, events.AccountsChangedEvent{Accounts: []string{"0xabc"}}, got[1])
}

func TestRemoveListener(t *testing.T) {
	e := events.NewEmitter("evm")

	calls := 0
	id := e.On(events.ChainChanged, func(events.Event) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, e.ListenerCount(events.ChainChanged))

	e.Emit(events.ChainChangedEvent{ChainID: "0x1"})
	assert.True(t, e.RemoveListener(events.ChainChanged, id))
	assert.False(t, e.RemoveListener(events.ChainChanged, id))
	e.Emit(events.ChainChangedEvent{ChainID: "0x2"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, e.ListenerCount(events.ChainChanged))
}

func TestOnce(t *testing.T) {
	e := events.NewEmitter("solana")

	calls := 0
	e.Once(events.Connect, func(events.Event) error {
		calls++
		return nil
	})

	e.Emit(events.ConnectEvent{PublicKey: "x"})
	e.Emit(events.ConnectEvent{PublicKey: "x"})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	e := events.NewEmitter("evm")

	var order []string
	var second events.ListenerID

	e.On(events.Disconnect, func(events.Event) error {
		order = append(order, "first")
		e.RemoveListener(events.Disconnect, second)
		return nil
	})
	second = e.On(events.Disconnect, func(events.Event) error {
		order = append(order, "second")
		return nil
	})

	e.Emit(events.DisconnectEvent{Code: events.CodeDisconnected})
	e.Emit(events.DisconnectEvent{Code: events.CodeDisconnected})

	// the snapshot of the first emission still contains the removed handler
	assert.Equal(t, []string{"first", "second", "first"}, order)
}

func TestFailingHandlersAreIsolated(t *testing.T) {
	e := events.NewEmitter("evm")

	var reported []events.ErrorEvent
	e.On(events.Error, func(ev events.Event) error {
		errEvent, ok := ev.(events.ErrorEvent)
		require.True(t, ok)
		reported = append(reported, errEvent)
		return errors.New("error handlers may fail too")
	})

	ran := false
	e.On(events.Connect, func(events.Event) error { return errors.New("boom") })
	e.On(events.Connect, func(events.Event) error { panic("kaboom") })
	e.On(events.Connect, func(events.Event) error {
		ran = true
		return nil
	})

	assert.NotPanics(t, func() { e.Emit(events.ConnectEvent{ChainID: "0x1"}) })
	assert.True(t, ran)

	require.Len(t, reported, 2)
	assert.Equal(t, events.Connect, reported[0].Source)
	assert.EqualError(t, reported[0].Err, "boom")
	assert.Contains(t, reported[1].Err.Error(), "kaboom")
}

func TestRemoveAllListeners(t *testing.T) {
	e := events.NewEmitter("evm")
	noop := func(events.Event) error { return nil }

	e.On(events.Connect, noop)
	e.On(events.ChainChanged, noop)

	e.RemoveAllListeners(events.Connect)
	assert.Equal(t, 0, e.ListenerCount(events.Connect))
	assert.Equal(t, 1, e.ListenerCount(events.ChainChanged))

	e.RemoveAllListeners()
	assert.Equal(t, 0, e.ListenerCount(events.ChainChanged))
}

func TestSubscribe(t *testing.T) {
	hooked := 0
	e := events.NewEmitter("evm", events.WithEmitHook(func(events.Event) { hooked++ }))

	all, cancelAll := e.Subscribe(4)
	chainOnly, cancelChain := e.Subscribe(4, events.ChainChanged)
	defer cancelChain()

	e.Emit(events.ConnectEvent{ChainID: "0x1"})
	e.Emit(events.ChainChangedEvent{ChainID: "0x2"})

	first := <-all
	assert.Equal(t, "evm", first.Source)
	assert.Equal(t, events.Connect, first.Event)
	second := <-all
	assert.Equal(t, events.ChainChanged, second.Event)

	only := <-chainOnly
	assert.Equal(t, events.ChainChangedEvent{ChainID: "0x2"}, only.Data)
	assert.Empty(t, chainOnly)

	cancelAll()
	cancelAll()
	_, open := <-all
	assert.False(t, open)

	assert.Equal(t, 2, hooked)
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	e := events.NewEmitter("evm")
	ch, cancel := e.Subscribe(1)

	e.Emit(events.ChainChangedEvent{ChainID: "0x1"})
	e.Emit(events.ChainChangedEvent{ChainID: "0x2"})

	assert.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, events.ChainChangedEvent{ChainID: "0x1"}, ev.Data)

	e.Close()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestEnvelopeJSON(t *testing.T) {
	b, err := json.Marshal(events.Envelope{
		Source: "evm",
		Event:  events.Error,
		Data:   events.ErrorEvent{Source: events.Connect, Err: errors.New("boom")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"evm","event":"error","data":{"source":"connect","message":"boom"}}`, string(b))

	b, err = json.Marshal(events.AccountsChangedEvent{Accounts: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts":[]}`, string(b))
}

func TestNameValid(t *testing.T) {
	for _, name := range events.Names {
		assert.True(t, name.Valid())
	}
	assert.False(t, events.Name("accountChanged").Valid())
}
