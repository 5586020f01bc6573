package evm

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	capabilityAccounts        = "eth_accounts"
	caveatRestrictAccounts    = "restrictReturnedAccounts"
	permissionRequestArgument = 1
)

// wallet_requestPermissions takes [{eth_accounts: {}}] and connects.
func (p *Provider) requestPermissions(_ context.Context, params []json.RawMessage) (any, error) {
	if err := p.requireAccountsCapability(params); err != nil {
		return nil, err
	}

	p.Connect()

	return p.permissions(), nil
}

func (p *Provider) getPermissions(_ context.Context, _ []json.RawMessage) (any, error) {
	if !p.machine.Connected() {
		return []Permission{}, nil
	}

	return p.permissions(), nil
}

// wallet_revokePermissions takes [{eth_accounts: {}}] and disconnects.
func (p *Provider) revokePermissions(_ context.Context, params []json.RawMessage) (any, error) {
	if err := p.requireAccountsCapability(params); err != nil {
		return nil, err
	}

	p.Disconnect()

	return nil, nil
}

func (p *Provider) requireAccountsCapability(params []json.RawMessage) error {
	if err := requireParams(params, permissionRequestArgument); err != nil {
		return err
	}

	var requested map[string]json.RawMessage
	if err := paramObject(params, 0, &requested); err != nil {
		return err
	}

	if _, ok := requested[capabilityAccounts]; !ok {
		return errors.Wrapf(ErrInvalidParams, "only the %s permission is supported", capabilityAccounts)
	}

	return nil
}

func (p *Provider) permissions() []Permission {
	return []Permission{
		{
			ParentCapability: capabilityAccounts,
			Caveats: []Caveat{
				{Type: caveatRestrictAccounts, Value: p.machine.Accounts()},
			},
			Date: p.permissionDate.Load(),
		},
	}
}
