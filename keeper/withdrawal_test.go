package keeper_test

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

type withdrawalResult struct {
	amount sdkmath.Int
	err    error
}

// redeemAsync runs Redeem on its own goroutine so the test can observe the
// vault while the transfer is in flight.
func (s *TestSuite) redeemAsync(ctx context.Context, owner string, shares int64, receiver string) <-chan withdrawalResult {
	results := make(chan withdrawalResult, 1)
	sdkCtx := s.ctx.WithContext(ctx)
	go func() {
		amount, err := s.k.Redeem(sdkCtx, owner, sdkmath.NewInt(shares), receiver, "")
		results <- withdrawalResult{amount: amount, err: err}
	}()
	return results
}

func (s *TestSuite) awaitResult(results <-chan withdrawalResult) withdrawalResult {
	select {
	case res := <-results:
		return res
	case <-time.After(5 * time.Second):
		s.FailNow("withdrawal did not return")
		return withdrawalResult{}
	}
}

func (s *TestSuite) TestWithdraw_BurnsPreviewedShares() {
	s.deposit(s.alice, 1000, "")

	preview, err := s.k.PreviewWithdraw(s.ctx, sdkmath.NewInt(500))
	s.Require().NoError(err)
	s.Assert().Equal("500", preview.String())

	burned, err := s.k.Withdraw(s.ctx, s.alice, sdkmath.NewInt(500), "", "")
	s.Require().NoError(err)
	s.Assert().Equal(preview.String(), burned.String(), "burned shares match preview")
	s.assertShares(s.alice, 500)
	s.assertTotals(500, 500)
	s.assertTokens(s.alice, 999_500)
	s.assertTokens(s.f.VaultAddr, 500)
	s.Assert().Zero(s.pendingCount())
	s.assertEvent(types.EventTypeFtBurn, map[string]string{
		types.AttributeKeyOwner:  s.alice,
		types.AttributeKeyAmount: "500",
		types.AttributeKeyMemo:   types.MemoWithdrawal,
	})
	s.assertEvent(types.EventTypeVaultWithdraw, map[string]string{
		types.AttributeKeyOwner:    s.alice,
		types.AttributeKeyReceiver: s.alice,
		types.AttributeKeyAssets:   "500",
		types.AttributeKeyShares:   "500",
	})
}

func (s *TestSuite) TestRedeem_ToReceiver() {
	s.deposit(s.alice, 1000, "")
	s.resetEvents()

	assets, err := s.k.Redeem(s.ctx, s.alice, sdkmath.NewInt(400), s.bob, "payday")
	s.Require().NoError(err)
	s.Assert().Equal("400", assets.String())
	s.assertShares(s.alice, 600)
	s.assertTotals(600, 600)
	s.assertTokens(s.bob, 1_000_400)
	s.assertTokens(s.alice, 999_000)
	s.assertEvent(types.EventTypeWithdrawalInitiated, map[string]string{
		types.AttributeKeyOwner:    s.alice,
		types.AttributeKeyReceiver: s.bob,
		types.AttributeKeyAssets:   "400",
	})
	s.assertEvent(types.EventTypeVaultWithdraw, map[string]string{
		types.AttributeKeyReceiver: s.bob,
		types.AttributeKeyMemo:     "payday",
	})

	transfers := s.ledger.Transfers()
	s.Require().Len(transfers, 1)
	s.Assert().Equal(s.bob, transfers[0].Receiver)
	s.Assert().Equal(tokenID, transfers[0].TokenID)
	s.Assert().Equal("400", transfers[0].Amount.String())
}

func (s *TestSuite) TestRedeem_SoleHolderFullBalanceUnderflows() {
	s.deposit(s.alice, 1000, "")
	before := s.snapshot(s.alice, s.alice)

	_, err := s.k.Redeem(s.ctx, s.alice, sdkmath.NewInt(1000), "", "")
	s.Require().ErrorIs(err, types.ErrUnderflow)
	s.Assert().Equal(before, s.snapshot(s.alice, s.alice))
	s.Assert().Empty(s.ledger.Transfers())
}

func (s *TestSuite) TestWithdrawal_Rejections() {
	s.deposit(s.alice, 1000, "")

	tests := []struct {
		name   string
		run    func() error
		expErr error
	}{
		{
			name: "redeem above share balance",
			run: func() error {
				_, err := s.k.Redeem(s.ctx, s.alice, sdkmath.NewInt(1001), "", "")
				return err
			},
			expErr: types.ErrExceedsMaxRedeem,
		},
		{
			name: "redeem without shares",
			run: func() error {
				_, err := s.k.Redeem(s.ctx, s.bob, sdkmath.NewInt(1), "", "")
				return err
			},
			expErr: types.ErrExceedsMaxRedeem,
		},
		{
			name: "redeem zero",
			run: func() error {
				_, err := s.k.Redeem(s.ctx, s.alice, sdkmath.ZeroInt(), "", "")
				return err
			},
			expErr: types.ErrInvalidAmount,
		},
		{
			name: "withdraw above max",
			run: func() error {
				_, err := s.k.Withdraw(s.ctx, s.alice, sdkmath.NewInt(1002), "", "")
				return err
			},
			expErr: types.ErrExceedsMaxWithdraw,
		},
		{
			name: "withdraw negative",
			run: func() error {
				_, err := s.k.Withdraw(s.ctx, s.alice, sdkmath.NewInt(-1), "", "")
				return err
			},
			expErr: types.ErrInvalidAmount,
		},
		{
			name: "malformed owner",
			run: func() error {
				_, err := s.k.Redeem(s.ctx, "alice.near", sdkmath.NewInt(1), "", "")
				return err
			},
			expErr: types.ErrInvalidRequest,
		},
		{
			name: "malformed receiver",
			run: func() error {
				_, err := s.k.Withdraw(s.ctx, s.alice, sdkmath.NewInt(1), "bob.near", "")
				return err
			},
			expErr: types.ErrInvalidRequest,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			before := s.snapshot(s.alice, s.alice)
			err := tc.run()
			s.Require().ErrorIs(err, tc.expErr)
			s.Assert().Equal(before, s.snapshot(s.alice, s.alice), "state unchanged")
			s.Assert().Zero(s.pendingCount())
		})
	}
	s.Assert().Empty(s.ledger.Transfers(), "no transfer requested")
}

func (s *TestSuite) TestRedeem_ZeroAssetsRejected() {
	s.deposit(s.alice, 1000, "")
	vault, err := s.k.GetVault(s.ctx)
	s.Require().NoError(err)
	vault.TotalAssets = sdkmath.ZeroInt()
	s.Require().NoError(s.k.Vault.Set(s.ctx, vault))

	_, err = s.k.TestAccessor_beginRedeem(s.T(), s.ctx, s.alice, sdkmath.NewInt(1), "", "")
	s.Require().ErrorIs(err, types.ErrInvalidAmount)
	s.Assert().Zero(s.pendingCount())
	s.assertShares(s.alice, 1000)
}

func (s *TestSuite) TestWithdrawal_FailedTransferRollsBack() {
	tests := []struct {
		name     string
		toBob    bool
		setup    func()
		withdraw bool
	}{
		{name: "redeem to unregistered receiver"},
		{name: "withdraw to unregistered receiver", withdraw: true},
		{name: "redeem with failed transfer", toBob: true, setup: func() { s.ledger.FailNextTransfer("ledger paused") }},
		{name: "withdraw with dropped outcome", toBob: true, setup: func() { s.ledger.DropNextTransfer() }, withdraw: true},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.deposit(s.alice, 1000, "")
			s.deposit(s.bob, 1000, "")
			s.resetEvents()
			if tc.setup != nil {
				tc.setup()
			}
			receiver := utils.TestAddress().Bech32
			if tc.toBob {
				receiver = s.bob
			}
			before := s.snapshot(s.alice, receiver)

			var (
				settled sdkmath.Int
				err     error
			)
			if tc.withdraw {
				settled, err = s.k.Withdraw(s.ctx, s.alice, sdkmath.NewInt(300), receiver, "")
			} else {
				settled, err = s.k.Redeem(s.ctx, s.alice, sdkmath.NewInt(300), receiver, "")
			}
			s.Require().NoError(err)
			s.Assert().True(settled.IsZero(), "nothing settled, got %s", settled)
			s.Assert().Equal(before, s.snapshot(s.alice, receiver), "vault restored")
			s.Assert().Zero(s.pendingCount())
			s.assertEvent(types.EventTypeFtMint, map[string]string{
				types.AttributeKeyOwner: s.alice,
				types.AttributeKeyMemo:  types.MemoWithdrawalRollback,
			})
			s.assertEvent(types.EventTypeWithdrawalRolledBack, map[string]string{
				types.AttributeKeyOwner: s.alice,
			})
			s.assertNoEvent(types.EventTypeVaultWithdraw)
		})
	}
}

func (s *TestSuite) TestRedeem_StateWhileTransferInFlight() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	s.ledger.Hold()

	results := s.redeemAsync(context.Background(), s.alice, 500, "")
	s.waitInFlight(1)

	s.assertShares(s.alice, 500)
	s.assertTotals(1500, 1499)
	s.assertTokens(s.f.VaultAddr, 2000)
	s.Assert().Equal(1, s.pendingCount())

	maxRedeem, err := s.k.MaxRedeem(s.ctx, s.bob)
	s.Require().NoError(err, "queries are served while the transfer is in flight")
	s.Assert().Equal("999", maxRedeem.String())

	s.ledger.Release()
	res := s.awaitResult(results)
	s.Require().NoError(res.err)
	s.Assert().Equal("500", res.amount.String())
	s.assertTotals(1500, 1499)
	s.assertTokens(s.f.VaultAddr, 1500)
	s.assertTokens(s.alice, 999_500)
	s.Assert().Zero(s.pendingCount())
}

func (s *TestSuite) TestRedeem_ConcurrentWithdrawals() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	s.ledger.Hold()

	aliceResults := s.redeemAsync(context.Background(), s.alice, 500, "")
	bobResults := s.redeemAsync(context.Background(), s.bob, 500, "")
	s.waitInFlight(2)
	s.assertTotals(1000, 999)

	s.ledger.Release()
	for _, results := range []<-chan withdrawalResult{aliceResults, bobResults} {
		res := s.awaitResult(results)
		s.Require().NoError(res.err)
		s.Assert().Equal("500", res.amount.String())
	}
	s.assertTotals(1000, 999)
	s.assertTokens(s.alice, 999_500)
	s.assertTokens(s.bob, 999_500)
	s.assertTokens(s.f.VaultAddr, 1000)
	s.Assert().Zero(s.pendingCount())
}

func (s *TestSuite) TestRedeem_CancelledWhileInFlight() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	s.ledger.Hold()

	ctx, cancel := context.WithCancel(context.Background())
	results := s.redeemAsync(ctx, s.alice, 500, "")
	s.waitInFlight(1)
	cancel()

	res := s.awaitResult(results)
	s.Require().ErrorIs(res.err, types.ErrWithdrawalUnresolved)
	s.Assert().Equal(1, s.pendingCount(), "withdrawal stays pending")
	s.assertShares(s.alice, 500)
	s.assertTotals(1500, 1499)

	var id uint64
	s.Require().NoError(s.k.PendingWithdrawals.Walk(s.ctx, func(pid uint64, pw types.PendingWithdrawal) (bool, error) {
		id = pid
		s.Assert().Equal(s.alice, pw.Owner)
		s.Assert().Equal("500", pw.Shares.String())
		s.Assert().Equal("500", pw.Assets.String())
		return true, nil
	}))

	settled, err := s.k.ResolveWithdrawal(s.ctx, id, types.TransferFailed("transfer abandoned"))
	s.Require().NoError(err)
	s.Assert().True(settled.IsZero())
	s.assertShares(s.alice, 1000)
	s.assertTotals(2000, 1999)
	s.Assert().Zero(s.pendingCount())
}
