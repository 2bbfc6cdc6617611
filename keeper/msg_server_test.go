package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/mtvault/keeper"
	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

func (s *TestSuite) TestMsgServer_Redeem() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	server := keeper.NewMsgServer(s.k)

	tests := []struct {
		name        string
		signer      string
		msg         *types.MsgRedeemRequest
		expAssets   string
		expErr      error
		errContains string
	}{
		{
			name:      "redeem to owner",
			signer:    s.alice,
			msg:       &types.MsgRedeemRequest{Owner: s.alice, Shares: sdkmath.NewInt(100)},
			expAssets: "100",
		},
		{
			name:      "redeem to receiver",
			signer:    s.bob,
			msg:       &types.MsgRedeemRequest{Owner: s.bob, Shares: sdkmath.NewInt(100), Receiver: s.alice, Memo: "rent"},
			expAssets: "100",
		},
		{
			name:   "nil request",
			signer: s.alice,
			expErr: types.ErrInvalidRequest,
		},
		{
			name:        "malformed owner",
			signer:      s.alice,
			msg:         &types.MsgRedeemRequest{Owner: "alice", Shares: sdkmath.NewInt(1)},
			expErr:      types.ErrInvalidRequest,
			errContains: "invalid owner address",
		},
		{
			name:        "zero shares",
			signer:      s.alice,
			msg:         &types.MsgRedeemRequest{Owner: s.alice, Shares: sdkmath.ZeroInt()},
			expErr:      types.ErrInvalidRequest,
			errContains: "shares must be positive",
		},
		{
			name:   "more than owned",
			signer: s.alice,
			msg:    &types.MsgRedeemRequest{Owner: s.alice, Shares: sdkmath.NewInt(10_000)},
			expErr: types.ErrExceedsMaxRedeem,
		},
		{
			name:        "unsigned",
			msg:         &types.MsgRedeemRequest{Owner: s.alice, Shares: sdkmath.NewInt(1)},
			expErr:      types.ErrUnauthorized,
			errContains: "missing signer",
		},
		{
			name:        "signed by another account",
			signer:      s.bob,
			msg:         &types.MsgRedeemRequest{Owner: s.alice, Shares: sdkmath.NewInt(1), Receiver: s.bob},
			expErr:      types.ErrUnauthorized,
			errContains: "cannot act for " + s.alice,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			resp, err := server.Redeem(types.WithSigner(s.ctx, tc.signer), tc.msg)
			if tc.expErr != nil {
				s.Require().ErrorIs(err, tc.expErr)
				if tc.errContains != "" {
					s.Assert().ErrorContains(err, tc.errContains)
				}
				s.Assert().Nil(resp)
				return
			}
			s.Require().NoError(err)
			s.Assert().Equal(tc.expAssets, resp.Assets.String())
		})
	}

	s.assertShares(s.alice, 900)
	s.assertShares(s.bob, 899)
	s.assertTotals(1800, 1799)
}

func (s *TestSuite) TestMsgServer_Withdraw() {
	s.deposit(s.alice, 1000, "")
	server := keeper.NewMsgServer(s.k)
	signed := types.WithSigner(s.ctx, s.alice)

	resp, err := server.Withdraw(signed, &types.MsgWithdrawRequest{Owner: s.alice, Assets: sdkmath.NewInt(250), Receiver: s.bob})
	s.Require().NoError(err)
	s.Assert().Equal("250", resp.Shares.String())
	s.assertTokens(s.bob, 1_000_250)

	_, err = server.Withdraw(signed, &types.MsgWithdrawRequest{Owner: s.alice, Assets: sdkmath.NewInt(1), Receiver: "bob"})
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
	s.Assert().ErrorContains(err, "invalid receiver address")

	_, err = server.Withdraw(signed, nil)
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
}

func (s *TestSuite) TestMsgServer_WithdrawRequiresOwnerSignature() {
	s.deposit(s.alice, 1000, "")
	server := keeper.NewMsgServer(s.k)
	mallory := utils.TestAddress().Bech32
	s.ledger.RegisterAccount(mallory)
	before := s.snapshot(s.alice, mallory)

	for _, tc := range []struct {
		name   string
		signer string
	}{
		{name: "unsigned"},
		{name: "signed by receiver", signer: mallory},
	} {
		s.Run(tc.name, func() {
			resp, err := server.Withdraw(types.WithSigner(s.ctx, tc.signer),
				&types.MsgWithdrawRequest{Owner: s.alice, Assets: sdkmath.NewInt(1000), Receiver: mallory})
			s.Require().ErrorIs(err, types.ErrUnauthorized)
			s.Assert().Nil(resp)
		})
	}

	s.Assert().Equal(before, s.snapshot(s.alice, mallory), "vault and balances untouched")
	s.assertTokens(mallory, 0)
	s.Assert().Empty(s.ledger.Transfers(), "no asset transfer requested")
}

func (s *TestSuite) TestMsgServer_DepositsOnlyThroughAssetLedger() {
	mallory := utils.TestAddress().Bech32
	s.ledger.RegisterAccount(mallory)
	s.deposit(s.alice, 1000, "")

	_, err := s.ledger.TransferAndNotify(s.ctx, mallory, s.f.VaultAddr, tokenID, sdkmath.NewInt(1000), "")
	s.Require().Error(err, "tokens mallory does not hold cannot be deposited")
	s.assertShares(mallory, 0)
	s.assertTotals(1000, 1000)
	s.assertTokens(s.f.VaultAddr, 1000)
}

func (s *TestSuite) TestMsgServer_TransferShares() {
	s.deposit(s.alice, 1000, "")
	server := keeper.NewMsgServer(s.k)
	s.resetEvents()

	tests := []struct {
		name        string
		signer      string
		msg         *types.MsgTransferSharesRequest
		expErr      error
		errContains string
	}{
		{
			name:   "sender signs",
			signer: s.alice,
			msg:    &types.MsgTransferSharesRequest{Sender: s.alice, Receiver: s.bob, Amount: sdkmath.NewInt(300), Memo: "gift"},
		},
		{
			name:   "nil request",
			signer: s.alice,
			expErr: types.ErrInvalidRequest,
		},
		{
			name:        "to self",
			signer:      s.alice,
			msg:         &types.MsgTransferSharesRequest{Sender: s.alice, Receiver: s.alice, Amount: sdkmath.NewInt(1)},
			expErr:      types.ErrInvalidRequest,
			errContains: "sender and receiver must differ",
		},
		{
			name:   "receiver signs for sender",
			signer: s.bob,
			msg:    &types.MsgTransferSharesRequest{Sender: s.alice, Receiver: s.bob, Amount: sdkmath.NewInt(700)},
			expErr: types.ErrUnauthorized,
		},
		{
			name:   "more than held",
			signer: s.alice,
			msg:    &types.MsgTransferSharesRequest{Sender: s.alice, Receiver: s.bob, Amount: sdkmath.NewInt(701)},
			expErr: types.ErrInsufficientShares,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			resp, err := server.TransferShares(types.WithSigner(s.ctx, tc.signer), tc.msg)
			if tc.expErr != nil {
				s.Require().ErrorIs(err, tc.expErr)
				if tc.errContains != "" {
					s.Assert().ErrorContains(err, tc.errContains)
				}
				s.Assert().Nil(resp)
				return
			}
			s.Require().NoError(err)
			s.Assert().NotNil(resp)
		})
	}

	s.assertShares(s.alice, 700)
	s.assertShares(s.bob, 300)
	s.assertTotals(1000, 1000)
	s.assertEvent(types.EventTypeFtTransfer, map[string]string{
		types.AttributeKeyOldOwner: s.alice,
		types.AttributeKeyNewOwner: s.bob,
		types.AttributeKeyAmount:   "300",
		types.AttributeKeyMemo:     "gift",
	})
}
