package discovery

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/wallet"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

const (
	GlobalEthereum = "ethereum"
	GlobalPhantom  = "phantom"
	GlobalSolana   = "solana"
)

// PhantomNamespace is the value installed as window.phantom.
type PhantomNamespace struct {
	Solana *sol.Provider
}

type priorGlobal struct {
	value   any
	defined bool
}

// Injection binds one wallet to a window. Uninstall restores the window.
type Injection struct {
	window       *Window
	prior        map[string]priorGlobal
	announcement *Announcement
	unregister   func()

	once sync.Once
}

// Install exposes the wallet's providers on w: window.ethereum plus an EIP-6963
// announcement for EVM, window.phantom.solana, window.solana plus a Wallet
// Standard registration for Solana. Prior global values are remembered.
func Install(w *Window, wal *wallet.Wallet) *Injection {
	inj := &Injection{
		window: w,
		prior:  map[string]priorGlobal{},
	}

	if p := wal.EVM(); p != nil {
		inj.set(GlobalEthereum, p)
		inj.announcement = AnnounceProvider(w, wal.Branding(), p)
	}

	if p := wal.Solana(); p != nil {
		inj.set(GlobalPhantom, &PhantomNamespace{Solana: p})
		inj.set(GlobalSolana, p)
		inj.unregister = RegisterWallet(w, p.Standard())
	}

	log.Debug().
		Str("component", "discovery").
		Bool("evm", wal.EVM() != nil).
		Bool("solana", wal.Solana() != nil).
		Msg("Wallet injected")

	return inj
}

func (inj *Injection) set(name string, v any) {
	prior, defined := inj.window.Get(name)
	inj.prior[name] = priorGlobal{value: prior, defined: defined}
	inj.window.Set(name, v)
}

// Announcement returns the EIP-6963 announcement, nil without EVM accounts.
func (inj *Injection) Announcement() *Announcement {
	return inj.announcement
}

// Uninstall stops the announcement, unregisters the wallet and restores every
// global to its prior value, deleting those that did not exist. It is idempotent.
func (inj *Injection) Uninstall() {
	inj.once.Do(func() {
		if inj.announcement != nil {
			inj.announcement.Uninstall()
		}
		if inj.unregister != nil {
			inj.unregister()
		}

		for name, prior := range inj.prior {
			if prior.defined {
				inj.window.Set(name, prior.value)
			} else {
				inj.window.Delete(name)
			}
		}

		log.Debug().Str("component", "discovery").Msg("Wallet uninstalled")
	})
}
