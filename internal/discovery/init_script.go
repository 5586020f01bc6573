package discovery

import (
	"bytes"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet"
)

//go:embed templates/inject.js.tmpl
var templatesFS embed.FS

var initScriptTemplate = template.Must(
	template.New("inject.js.tmpl").
		Funcs(template.FuncMap{"json": toJSON}).
		ParseFS(templatesFS, "templates/inject.js.tmpl"),
)

// InitScriptData parameterizes the browser init script.
type InitScriptData struct {
	BridgeURL  string
	Info       ProviderInfo
	EVM        bool
	Solana     bool
	IsMetaMask bool
	IsPhantom  bool
}

// NewInitScriptData describes wal for a page served by the bridge at bridgeURL.
func NewInitScriptData(wal *wallet.Wallet, bridgeURL string) InitScriptData {
	branding := wal.Branding()

	return InitScriptData{
		BridgeURL:  strings.TrimRight(bridgeURL, "/"),
		Info:       NewProviderInfo(branding),
		EVM:        wal.EVM() != nil,
		Solana:     wal.Solana() != nil,
		IsMetaMask: branding.IsMetaMask,
		IsPhantom:  branding.IsPhantom,
	}
}

// InitScript renders the script that defines window.ethereum and
// window.phantom.solana as proxies onto the bridge and performs the EIP-6963
// announcement. It is meant to run before any page script.
func InitScript(data InitScriptData) (string, error) {
	var buf bytes.Buffer
	if err := initScriptTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render init script")
	}

	return buf.String(), nil
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
