package boclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// Bank is one payout/payin bank known to the backoffice.
type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// BankGroup is a named grouping of settlement accounts.
type BankGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AccountOption is a selectable account entry for dropdowns.
type AccountOption struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// CreditBalance is the merchant's current balance and accrued commission.
type CreditBalance struct {
	Balance    float64 `json:"balance"`
	Commission float64 `json:"commission"`
}

// Banks fetches the bank reference list.
func (a *App) Banks(ctx context.Context) ([]Bank, error) {
	var out []Bank
	if err := a.getJSON(ctx, "api/v1/bo/bank", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BankGroups fetches the bank group reference list.
func (a *App) BankGroups(ctx context.Context) ([]BankGroup, error) {
	var out []BankGroup
	if err := a.getJSON(ctx, "api/v1/bo/bank-group", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountOptions fetches the selectable account list.
func (a *App) AccountOptions(ctx context.Context) ([]AccountOption, error) {
	var out []AccountOption
	if err := a.getJSON(ctx, "api/v1/bo/account/options/list", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance fetches the merchant credit balance and commission.
func (a *App) Balance(ctx context.Context) (*CreditBalance, error) {
	var out CreditBalance
	if err := a.getJSON(ctx, "api/v1/bo/merchant/credit/balance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON funnels a typed fetch through the gateway. Failure handling and
// notification happen there; this only decodes the success payload.
func (a *App) getJSON(ctx context.Context, path string, out any) error {
	data, err := a.Gateway.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s payload: %v", path, err)
	}
	return nil
}
