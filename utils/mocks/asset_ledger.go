package mocks

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/provlabs/mtvault/types"
)

var _ types.AssetLedger = (*AssetLedger)(nil)

// AssetLedger is an in-memory multi-token ledger. Tokens can only be sent to
// registered accounts. Transfers made on behalf of the vault settle
// asynchronously, and can be held back to observe the vault while they are
// in flight.
type AssetLedger struct {
	mu sync.Mutex

	account      string
	vaultAccount string
	balances     map[string]map[string]math.Int
	registered   map[string]bool
	receivers    map[string]types.MultiTokenReceiver

	held      bool
	waiting   []func()
	transfers []types.TransferRequest
	failNext  []string
	dropNext  int
}

// NewAssetLedger returns a ledger living at account whose Transfer calls move
// tokens out of vaultAccount.
func NewAssetLedger(account, vaultAccount string) *AssetLedger {
	l := &AssetLedger{
		account:      account,
		vaultAccount: vaultAccount,
		balances:     make(map[string]map[string]math.Int),
		registered:   make(map[string]bool),
		receivers:    make(map[string]types.MultiTokenReceiver),
	}
	l.registered[vaultAccount] = true
	return l
}

// Account returns the ledger's own account.
func (l *AssetLedger) Account() string {
	return l.account
}

// RegisterAccount allows account to hold tokens.
func (l *AssetLedger) RegisterAccount(account string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registered[account] = true
}

// SetReceiver makes transfer-and-notify calls to account invoke r.
func (l *AssetLedger) SetReceiver(account string, r types.MultiTokenReceiver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receivers[account] = r
	l.registered[account] = true
}

// Mint creates amount of tokenID for account, registering it.
func (l *AssetLedger) Mint(account, tokenID string, amount math.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registered[account] = true
	l.credit(account, tokenID, amount)
}

// BalanceOf returns the tokenID balance of account.
func (l *AssetLedger) BalanceOf(account, tokenID string) math.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(account, tokenID)
}

// Supply returns the total amount of tokenID across all accounts.
func (l *AssetLedger) Supply(tokenID string) math.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	supply := math.ZeroInt()
	for _, amount := range l.balances[tokenID] {
		supply = supply.Add(amount)
	}
	return supply
}

// TransferAndNotify moves amount from sender to receiver and invokes the
// receiver's callback. The unused amount reported by the callback is refunded
// to sender and the used amount is returned. If the callback fails, the whole
// transfer is reverted.
func (l *AssetLedger) TransferAndNotify(ctx context.Context, sender, receiver, tokenID string, amount math.Int, msg string) (math.Int, error) {
	l.mu.Lock()
	r, ok := l.receivers[receiver]
	if !ok {
		l.mu.Unlock()
		return math.Int{}, fmt.Errorf("account %s does not accept transfer calls", receiver)
	}
	if err := l.move(sender, receiver, tokenID, amount); err != nil {
		l.mu.Unlock()
		return math.Int{}, err
	}
	l.mu.Unlock()

	unused, err := r.OnMultiTokenTransfer(ctx, types.TransferNotification{
		Caller:        l.account,
		Sender:        sender,
		PreviousOwner: sender,
		TokenIDs:      []string{tokenID},
		Amounts:       []math.Int{amount},
		Msg:           msg,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	refund := amount
	if err == nil && len(unused) == 1 && unused[0].LTE(amount) {
		refund = unused[0]
	}
	if moveErr := l.move(receiver, sender, tokenID, refund); moveErr != nil {
		return math.Int{}, moveErr
	}
	if err != nil {
		return math.ZeroInt(), err
	}
	return amount.Sub(refund), nil
}

// Transfer implements types.AssetLedger. The transfer settles on its own
// goroutine, or on Release when the ledger is held.
func (l *AssetLedger) Transfer(_ context.Context, req types.TransferRequest) <-chan types.TransferOutcome {
	outcomes := make(chan types.TransferOutcome, 1)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.transfers = append(l.transfers, req)

	if l.dropNext > 0 {
		l.dropNext--
		close(outcomes)
		return outcomes
	}
	forcedFailure := ""
	if len(l.failNext) > 0 {
		forcedFailure = l.failNext[0]
		l.failNext = l.failNext[1:]
	}

	settle := func() {
		l.mu.Lock()
		var outcome types.TransferOutcome
		switch {
		case forcedFailure != "":
			outcome = types.TransferFailed(forcedFailure)
		case !l.registered[req.Receiver]:
			outcome = types.TransferFailed(fmt.Sprintf("account %s is not registered", req.Receiver))
		default:
			if err := l.move(l.vaultAccount, req.Receiver, req.TokenID, req.Amount); err != nil {
				outcome = types.TransferFailed(err.Error())
			} else {
				outcome = types.TransferSucceeded()
			}
		}
		l.mu.Unlock()
		outcomes <- outcome
		close(outcomes)
	}

	if l.held {
		l.waiting = append(l.waiting, settle)
	} else {
		go settle()
	}
	return outcomes
}

// Hold keeps subsequent transfers in flight until Release.
func (l *AssetLedger) Hold() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = true
}

// Release settles every held transfer in order and stops holding.
func (l *AssetLedger) Release() {
	l.mu.Lock()
	waiting := l.waiting
	l.waiting = nil
	l.held = false
	l.mu.Unlock()

	for _, settle := range waiting {
		settle()
	}
}

// InFlight returns the number of held transfers.
func (l *AssetLedger) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiting)
}

// FailNextTransfer makes the next transfer fail with reason.
func (l *AssetLedger) FailNextTransfer(reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failNext = append(l.failNext, reason)
}

// DropNextTransfer makes the next transfer close its outcome channel without
// reporting an outcome.
func (l *AssetLedger) DropNextTransfer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dropNext++
}

// Transfers returns every transfer requested so far.
func (l *AssetLedger) Transfers() []types.TransferRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.TransferRequest(nil), l.transfers...)
}

func (l *AssetLedger) balanceOf(account, tokenID string) math.Int {
	if amount, ok := l.balances[tokenID][account]; ok {
		return amount
	}
	return math.ZeroInt()
}

func (l *AssetLedger) credit(account, tokenID string, amount math.Int) {
	if l.balances[tokenID] == nil {
		l.balances[tokenID] = make(map[string]math.Int)
	}
	l.balances[tokenID][account] = l.balanceOf(account, tokenID).Add(amount)
}

func (l *AssetLedger) move(from, to, tokenID string, amount math.Int) error {
	if !l.registered[to] {
		return fmt.Errorf("account %s is not registered", to)
	}
	balance := l.balanceOf(from, tokenID)
	if balance.LT(amount) {
		return fmt.Errorf("%s has %s %s, needs %s", from, balance, tokenID, amount)
	}
	l.credit(from, tokenID, amount.Neg())
	l.credit(to, tokenID, amount)
	return nil
}
