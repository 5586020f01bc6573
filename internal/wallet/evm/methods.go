package evm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
)

func (p *Provider) requestAccounts(_ context.Context, _ []json.RawMessage) (any, error) {
	return p.Connect(), nil
}

func (p *Provider) accounts(_ context.Context, _ []json.RawMessage) (any, error) {
	return p.machine.Accounts(), nil
}

func (p *Provider) chainID(_ context.Context, _ []json.RawMessage) (any, error) {
	return p.chains.Active(), nil
}

func (p *Provider) netVersion(_ context.Context, _ []json.RawMessage) (any, error) {
	return chain.NetVersion(p.chains.Active())
}

// personal_sign takes [message, address]. Some libraries still send
// [address, message]; the order is detected from which param is a held address.
func (p *Provider) personalSign(ctx context.Context, params []json.RawMessage) (any, error) {
	if err := requireParams(params, 2); err != nil { //nolint:mnd
		return nil, err
	}

	message, err := paramString(params, 0)
	if err != nil {
		return nil, err
	}

	address, err := paramString(params, 1)
	if err != nil {
		return nil, err
	}

	if isAddress(message) && !isAddress(address) {
		message, address = address, message
	}

	account, err := p.store.Find(keystore.ChainFamilyEVM, address)
	if err != nil {
		return nil, err
	}

	signature, err := p.signer.PersonalSign(ctx, account, signer.DecodePersonalMessage(message))
	if err != nil {
		return nil, err
	}

	return signature.String(), nil
}

func (p *Provider) personalECRecover(_ context.Context, params []json.RawMessage) (any, error) {
	if err := requireParams(params, 2); err != nil { //nolint:mnd
		return nil, err
	}

	message, err := paramString(params, 0)
	if err != nil {
		return nil, err
	}

	signatureHex, err := paramString(params, 1)
	if err != nil {
		return nil, err
	}

	signature, err := hexutil.Decode(signatureHex)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidParams, "signature must be 0x hex")
	}

	address, err := signer.RecoverPersonalSign(signer.DecodePersonalMessage(message), signature)
	if err != nil {
		return nil, err
	}

	return strings.ToLower(address.Hex()), nil
}

// eth_signTypedData_v4 takes [address, typedData], typedData as JSON string or object.
func (p *Provider) signTypedDataV4(ctx context.Context, params []json.RawMessage) (any, error) {
	if err := requireParams(params, 2); err != nil { //nolint:mnd
		return nil, err
	}

	address, err := paramString(params, 0)
	if err != nil {
		return nil, err
	}

	payload, err := paramJSONDocument(params, 1)
	if err != nil {
		return nil, err
	}

	account, err := p.store.Find(keystore.ChainFamilyEVM, address)
	if err != nil {
		return nil, err
	}

	signature, err := p.signer.SignTypedData(ctx, account, payload)
	if err != nil {
		return nil, err
	}

	return signature.String(), nil
}

// eth_sendTransaction never broadcasts. The sender must be held by the wallet;
// the result is a random hash.
func (p *Provider) sendTransaction(_ context.Context, params []json.RawMessage) (any, error) {
	if _, err := p.transactionRequest(params); err != nil {
		return nil, err
	}

	return p.signer.PseudoTransactionHash()
}

func (p *Provider) signTransaction(ctx context.Context, params []json.RawMessage) (any, error) {
	req, err := p.transactionRequest(params)
	if err != nil {
		return nil, err
	}

	account, err := p.sender(req)
	if err != nil {
		return nil, err
	}

	res, err := p.signer.SignEVMTransaction(ctx, account, req)
	if err != nil {
		return nil, err
	}

	return res.Raw.String(), nil
}

func (p *Provider) transactionRequest(params []json.RawMessage) (*signer.SignEVMRequest, error) {
	if err := requireParams(params, 1); err != nil {
		return nil, err
	}

	var req signer.SignEVMRequest
	if err := paramObject(params, 0, &req); err != nil {
		return nil, err
	}

	if req.ChainID == nil {
		id, err := chain.ChainIDToBig(p.chains.Active())
		if err != nil {
			return nil, err
		}
		req.ChainID = (*hexutil.Big)(id)
	}

	if _, err := p.sender(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

// sender resolves the from field, defaulting to the active account.
func (p *Provider) sender(req *signer.SignEVMRequest) (*keystore.Account, error) {
	if req.From == nil {
		_, index := p.machine.Active()
		return p.store.Get(keystore.ChainFamilyEVM, index)
	}

	return p.store.Find(keystore.ChainFamilyEVM, req.From.Hex())
}

func (p *Provider) switchChain(_ context.Context, params []json.RawMessage) (any, error) {
	if err := requireParams(params, 1); err != nil {
		return nil, err
	}

	var req struct {
		ChainID any `json:"chainId"`
	}
	if err := paramObject(params, 0, &req); err != nil {
		return nil, err
	}
	if req.ChainID == nil {
		return nil, errors.Wrap(ErrInvalidParams, "chainId is required")
	}

	if err := p.SwitchChain(req.ChainID); err != nil {
		if errors.Is(err, chain.ErrUnrecognizedChain) {
			id, _ := chain.NormalizeChainID(req.ChainID)
			return nil, &ProviderError{
				Code:    CodeUnrecognizedChain,
				Message: "Unrecognized chain ID \"" + id + "\". Try adding the chain using wallet_addEthereumChain first.",
				cause:   err,
			}
		}
		return nil, err
	}

	return nil, nil
}

// wallet_addEthereumChain registers the chain without switching to it.
func (p *Provider) addChain(_ context.Context, params []json.RawMessage) (any, error) {
	if err := requireParams(params, 1); err != nil {
		return nil, err
	}

	var req chain.Chain
	if err := paramObject(params, 0, &req); err != nil {
		return nil, err
	}
	if req.ChainID == "" {
		return nil, errors.Wrap(ErrInvalidParams, "chainId is required")
	}

	if _, err := p.chains.Add(req); err != nil {
		return nil, err
	}

	return nil, nil
}

// wallet_getCapabilities takes [address?, chainIds?] and answers per registered chain.
func (p *Provider) getCapabilities(_ context.Context, params []json.RawMessage) (any, error) {
	ids := p.chains.IDs()

	if len(params) > 0 {
		address, err := paramString(params, 0)
		if err != nil {
			return nil, err
		}
		if address != "" {
			if _, err := p.store.Find(keystore.ChainFamilyEVM, address); err != nil {
				return nil, err
			}
		}
	}

	if len(params) > 1 {
		var requested []string
		if err := paramObject(params, 1, &requested); err != nil {
			return nil, err
		}

		filtered := make([]string, 0, len(requested))
		for _, raw := range requested {
			id, err := chain.NormalizeChainID(raw)
			if err != nil {
				return nil, err
			}
			if _, ok := p.chains.Get(id); ok {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}

	methods := p.SupportedMethods()
	capabilities := make(map[string]Capabilities, len(ids))
	for _, id := range ids {
		capabilities[id] = Capabilities{
			Methods: methods,
			Atomic:  CapabilityStatus{Status: "unsupported"},
		}
	}

	return capabilities, nil
}

func (p *Provider) forward(method Method) handlerFunc {
	return func(ctx context.Context, params []json.RawMessage) (any, error) {
		active := p.chains.ActiveChain()
		if len(active.RPCURLs) == 0 {
			return nil, errors.Wrapf(chain.ErrNoRPCURL, "%s", active.ChainID)
		}

		args := make([]any, 0, len(params))
		for _, param := range params {
			args = append(args, param)
		}

		return p.pool.Call(ctx, active.ChainID, active.RPCURLs, string(method), args...)
	}
}
