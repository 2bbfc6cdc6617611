package container

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

var _ types.ShareLedger = (*ShareLedger)(nil)

// ShareLedger is the balance store of the vault's share token. Zero balances
// are removed from state.
type ShareLedger struct {
	Balances collections.Map[string, math.Int]
	Supply   collections.Item[math.Int]
}

// NewShareLedger creates a new ShareLedger.
func NewShareLedger(schemaBuilder *collections.SchemaBuilder) *ShareLedger {
	return &ShareLedger{
		Balances: collections.NewMap(schemaBuilder, types.ShareBalancesKeyPrefix, types.ShareBalancesName, collections.StringKey, sdk.IntValue),
		Supply:   collections.NewItem(schemaBuilder, types.ShareSupplyKeyPrefix, types.ShareSupplyName, sdk.IntValue),
	}
}

// Credit adds amount to the balance of account and to the total issued.
func (l *ShareLedger) Credit(ctx context.Context, account string, amount math.Int) error {
	if err := types.ValidateAmount("credit amount", amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance, err := l.BalanceOf(ctx, account)
	if err != nil {
		return err
	}
	supply, err := l.TotalIssued(ctx)
	if err != nil {
		return err
	}
	if balance, err = utils.CheckedAdd(balance, amount); err != nil {
		return sdkerrors.Wrapf(err, "credit %s", account)
	}
	if supply, err = utils.CheckedAdd(supply, amount); err != nil {
		return sdkerrors.Wrap(err, "share supply")
	}

	if err := l.Balances.Set(ctx, account, balance); err != nil {
		return err
	}
	return l.Supply.Set(ctx, supply)
}

// Debit removes amount from the balance of account and from the total issued.
func (l *ShareLedger) Debit(ctx context.Context, account string, amount math.Int) error {
	if err := types.ValidateAmount("debit amount", amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance, err := l.BalanceOf(ctx, account)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return sdkerrors.Wrapf(types.ErrInsufficientShares, "%s has %s, needs %s", account, balance, amount)
	}
	supply, err := l.TotalIssued(ctx)
	if err != nil {
		return err
	}
	if supply, err = utils.CheckedSub(supply, amount); err != nil {
		return sdkerrors.Wrap(err, "share supply")
	}

	balance = balance.Sub(amount)
	if balance.IsZero() {
		err = l.Balances.Remove(ctx, account)
	} else {
		err = l.Balances.Set(ctx, account, balance)
	}
	if err != nil {
		return err
	}
	return l.Supply.Set(ctx, supply)
}

// Transfer moves amount from one account to another. The total issued is
// unchanged.
func (l *ShareLedger) Transfer(ctx context.Context, from, to string, amount math.Int) error {
	if err := types.ValidatePositiveAmount("transfer amount", amount); err != nil {
		return err
	}
	if from == to {
		return sdkerrors.Wrapf(types.ErrInvalidRequest, "cannot transfer shares from %s to itself", from)
	}

	fromBalance, err := l.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBalance.LT(amount) {
		return sdkerrors.Wrapf(types.ErrInsufficientShares, "%s has %s, needs %s", from, fromBalance, amount)
	}
	toBalance, err := l.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if toBalance, err = utils.CheckedAdd(toBalance, amount); err != nil {
		return sdkerrors.Wrapf(err, "credit %s", to)
	}

	fromBalance = fromBalance.Sub(amount)
	if fromBalance.IsZero() {
		err = l.Balances.Remove(ctx, from)
	} else {
		err = l.Balances.Set(ctx, from, fromBalance)
	}
	if err != nil {
		return err
	}
	return l.Balances.Set(ctx, to, toBalance)
}

// BalanceOf returns the share balance of account, zero if it holds none.
func (l *ShareLedger) BalanceOf(ctx context.Context, account string) (math.Int, error) {
	balance, err := l.Balances.Get(ctx, account)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return balance, err
}

// TotalIssued returns the number of shares in existence.
func (l *ShareLedger) TotalIssued(ctx context.Context) (math.Int, error) {
	supply, err := l.Supply.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return supply, err
}

// Walk iterates over all non-zero balances ordered by account.
func (l *ShareLedger) Walk(ctx context.Context, fn func(account string, shares math.Int) (stop bool, err error)) error {
	return l.Balances.Walk(ctx, nil, fn)
}

// Import loads genesis balances and derives the total issued from them.
func (l *ShareLedger) Import(ctx context.Context, balances []types.ShareBalance) error {
	for _, b := range balances {
		if err := l.Credit(ctx, b.Account, b.Shares); err != nil {
			return err
		}
	}
	return nil
}

// Export returns all balances for genesis.
func (l *ShareLedger) Export(ctx context.Context) ([]types.ShareBalance, error) {
	balances := make([]types.ShareBalance, 0)
	err := l.Walk(ctx, func(account string, shares math.Int) (bool, error) {
		balances = append(balances, types.ShareBalance{Account: account, Shares: shares})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}
