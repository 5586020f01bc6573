package discovery

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/wallet"
)

const (
	EventAnnounceProvider = "eip6963:announceProvider"
	EventRequestProvider  = "eip6963:requestProvider"
)

// ProviderInfo is the EIP-6963 provider info.
type ProviderInfo struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	RDNS string `json:"rdns"`
}

// ProviderDetail is the detail of an announceProvider event.
type ProviderDetail struct {
	Info     ProviderInfo `json:"info"`
	Provider any          `json:"-"`
}

// NewProviderInfo builds provider info from branding with a fresh UUID.
func NewProviderInfo(branding wallet.Branding) ProviderInfo {
	return ProviderInfo{
		UUID: uuid.NewString(),
		Name: branding.Name,
		Icon: branding.Icon,
		RDNS: branding.RDNS,
	}
}

// Announcement is an installed EIP-6963 announcer.
type Announcement struct {
	window *Window
	detail ProviderDetail

	once   sync.Once
	remove func()
}

// AnnounceProvider announces provider on w and re-announces on every
// eip6963:requestProvider until Uninstall. Every call uses a fresh UUID.
func AnnounceProvider(w *Window, branding wallet.Branding, provider any) *Announcement {
	a := &Announcement{
		window: w,
		detail: ProviderDetail{Info: NewProviderInfo(branding), Provider: provider},
	}

	a.remove = w.AddEventListener(EventRequestProvider, func(CustomEvent) {
		a.announce()
	})
	a.announce()

	log.Debug().Str("component", "discovery").Str("uuid", a.detail.Info.UUID).Str("rdns", branding.RDNS).Msg("Provider announced")

	return a
}

func (a *Announcement) announce() {
	a.window.DispatchEvent(CustomEvent{Type: EventAnnounceProvider, Detail: a.detail})
}

// Info returns the announced provider info.
func (a *Announcement) Info() ProviderInfo {
	return a.detail.Info
}

// Uninstall stops answering requestProvider events. It is idempotent.
func (a *Announcement) Uninstall() {
	a.once.Do(a.remove)
}

// RequestProviders is the dApp side of EIP-6963: it dispatches requestProvider
// and collects the announcements received, deduplicated by UUID.
func RequestProviders(w *Window) []ProviderDetail {
	var (
		mu      sync.Mutex
		seen    = map[string]bool{}
		details []ProviderDetail
	)

	remove := w.AddEventListener(EventAnnounceProvider, func(ev CustomEvent) {
		detail, ok := ev.Detail.(ProviderDetail)
		if !ok {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		if !seen[detail.Info.UUID] {
			seen[detail.Info.UUID] = true
			details = append(details, detail)
		}
	})
	defer remove()

	w.DispatchEvent(CustomEvent{Type: EventRequestProvider})

	return details
}
