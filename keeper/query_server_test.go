package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"

	"github.com/provlabs/mtvault/keeper"
	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils/mocks"
	querytest "github.com/provlabs/mtvault/utils/query"
)

func (s *TestSuite) TestQueryServer_Vault() {
	testDef := querytest.TestDef[types.QueryVaultRequest, types.QueryVaultResponse]{
		QueryName: "Vault",
		Query:     keeper.NewQueryServer(s.k).Vault,
		ManualEquality: func(s querytest.TestSuiter, expected, actual *types.QueryVaultResponse) {
			s.Assert().Equal(expected.Vault.AssetRef, actual.Vault.AssetRef, "asset ref")
			s.Assert().Equal(expected.Vault.AssetTokenID, actual.Vault.AssetTokenID, "asset token id")
			s.Assert().Equal(expected.Vault.Owner, actual.Vault.Owner, "owner")
			s.Assert().Equal(expected.Vault.Metadata, actual.Vault.Metadata, "share metadata")
			s.Assert().Equal(expected.Vault.TotalAssets.String(), actual.Vault.TotalAssets.String(), "total assets")
			s.Assert().Equal(expected.TotalShares.String(), actual.TotalShares.String(), "total shares")
		},
	}

	vault := *types.NewVault(s.f.LedgerAddr, tokenID, s.f.Owner, s.f.Metadata)
	funded := vault
	funded.TotalAssets = sdkmath.NewInt(1500)

	tests := []querytest.TestCase[types.QueryVaultRequest, types.QueryVaultResponse]{
		{
			Name:         "empty vault",
			Req:          &types.QueryVaultRequest{},
			ExpectedResp: &types.QueryVaultResponse{Vault: vault, TotalShares: sdkmath.ZeroInt()},
		},
		{
			Name:         "after deposits",
			Setup:        func() { s.deposit(s.alice, 1000, ""); s.deposit(s.bob, 500, "") },
			Req:          &types.QueryVaultRequest{},
			ExpectedResp: &types.QueryVaultResponse{Vault: funded, TotalShares: sdkmath.NewInt(1499)},
		},
		{
			Name:               "nil request",
			ExpectedErrSubstrs: []string{"invalid request"},
			ExpectedCode:       codes.InvalidArgument,
		},
	}

	for _, tc := range tests {
		s.Run(tc.Name, func() {
			querytest.RunTestCase(s, testDef, tc)
		})
	}
}

func (s *TestSuite) TestQueryServer_Conversions() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	server := keeper.NewQueryServer(s.k)

	shares := querytest.TestDef[types.QueryConvertToSharesRequest, types.QueryConvertToSharesResponse]{
		QueryName: "ConvertToShares",
		Query:     server.ConvertToShares,
		ManualEquality: func(s querytest.TestSuiter, expected, actual *types.QueryConvertToSharesResponse) {
			s.Assert().Equal(expected.Shares.String(), actual.Shares.String(), "shares")
		},
	}
	for _, tc := range []querytest.TestCase[types.QueryConvertToSharesRequest, types.QueryConvertToSharesResponse]{
		{
			Name:         "rounds down",
			Req:          &types.QueryConvertToSharesRequest{Assets: sdkmath.NewInt(1000)},
			ExpectedResp: &types.QueryConvertToSharesResponse{Shares: sdkmath.NewInt(999)},
		},
		{
			Name:               "negative assets",
			Req:                &types.QueryConvertToSharesRequest{Assets: sdkmath.NewInt(-1)},
			ExpectedErrSubstrs: []string{"cannot be negative"},
			ExpectedCode:       codes.InvalidArgument,
		},
		{
			Name:               "above 128 bits",
			Req:                &types.QueryConvertToSharesRequest{Assets: types.MaxUint128.AddRaw(1)},
			ExpectedErrSubstrs: []string{"exceeds 128 bits"},
			ExpectedCode:       codes.OutOfRange,
		},
	} {
		s.Run("shares/"+tc.Name, func() { querytest.RunTestCase(s, shares, tc) })
	}

	assets := querytest.TestDef[types.QueryConvertToAssetsRequest, types.QueryConvertToAssetsResponse]{
		QueryName: "ConvertToAssets",
		Query:     server.ConvertToAssets,
		ManualEquality: func(s querytest.TestSuiter, expected, actual *types.QueryConvertToAssetsResponse) {
			s.Assert().Equal(expected.Assets.String(), actual.Assets.String(), "assets")
		},
	}
	for _, tc := range []querytest.TestCase[types.QueryConvertToAssetsRequest, types.QueryConvertToAssetsResponse]{
		{
			Name:         "all shares",
			Req:          &types.QueryConvertToAssetsRequest{Shares: sdkmath.NewInt(1999)},
			ExpectedResp: &types.QueryConvertToAssetsResponse{Assets: sdkmath.NewInt(2001)},
		},
		{
			Name:               "nil request",
			ExpectedErrSubstrs: []string{"invalid request"},
			ExpectedCode:       codes.InvalidArgument,
		},
	} {
		s.Run("assets/"+tc.Name, func() { querytest.RunTestCase(s, assets, tc) })
	}

	preview := querytest.TestDef[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		QueryName: "PreviewWithdraw",
		Query:     server.PreviewWithdraw,
		ManualEquality: func(s querytest.TestSuiter, expected, actual *types.QueryPreviewWithdrawResponse) {
			s.Assert().Equal(expected.Shares.String(), actual.Shares.String(), "shares")
		},
	}
	querytest.RunTestCase(s, preview, querytest.TestCase[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		Name:         "rounds up",
		Req:          &types.QueryPreviewWithdrawRequest{Assets: sdkmath.NewInt(1000)},
		ExpectedResp: &types.QueryPreviewWithdrawResponse{Shares: sdkmath.NewInt(1000)},
	})
}

func (s *TestSuite) TestQueryServer_VaultNotFound() {
	ctx, k := mocks.NewVaultKeeper(s.T(), s.ledger)
	server := keeper.NewQueryServer(k)
	s.SetContext(ctx)

	testDef := querytest.TestDef[types.QueryMaxWithdrawRequest, types.QueryMaxWithdrawResponse]{
		QueryName: "MaxWithdraw",
		Query:     server.MaxWithdraw,
	}
	querytest.RunTestCase(s, testDef, querytest.TestCase[types.QueryMaxWithdrawRequest, types.QueryMaxWithdrawResponse]{
		Name:               "no vault",
		Req:                &types.QueryMaxWithdrawRequest{Owner: s.alice},
		ExpectedErrSubstrs: []string{"vault not found"},
		ExpectedCode:       codes.NotFound,
	})
}

func (s *TestSuite) TestQueryServer_MaxRedeemAndMaxWithdraw() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	server := keeper.NewQueryServer(s.k)

	redeem, err := server.MaxRedeem(s.ctx, &types.QueryMaxRedeemRequest{Owner: s.bob})
	s.Require().NoError(err)
	s.Assert().Equal("999", redeem.Shares.String())

	withdraw, err := server.MaxWithdraw(s.ctx, &types.QueryMaxWithdrawRequest{Owner: s.alice})
	s.Require().NoError(err)
	s.Assert().Equal("1001", withdraw.Assets.String())

	_, err = server.MaxRedeem(s.ctx, &types.QueryMaxRedeemRequest{})
	s.Require().ErrorContains(err, "owner must be provided")
}

func (s *TestSuite) TestQueryServer_Balances() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	server := keeper.NewQueryServer(s.k)

	balance, err := server.Balance(s.ctx, &types.QueryBalanceRequest{Account: s.bob})
	s.Require().NoError(err)
	s.Assert().Equal("999", balance.Shares.String())

	first, err := server.Balances(s.ctx, &types.QueryBalancesRequest{Pagination: &query.PageRequest{Limit: 1}})
	s.Require().NoError(err)
	s.Require().Len(first.Balances, 1)
	s.Require().NotNil(first.Pagination)
	s.Require().NotEmpty(first.Pagination.NextKey)

	second, err := server.Balances(s.ctx, &types.QueryBalancesRequest{Pagination: &query.PageRequest{Key: first.Pagination.NextKey, Limit: 1}})
	s.Require().NoError(err)
	s.Require().Len(second.Balances, 1)
	s.Assert().ElementsMatch([]string{s.alice, s.bob}, []string{first.Balances[0].Account, second.Balances[0].Account})

	all, err := server.Balances(s.ctx, &types.QueryBalancesRequest{})
	s.Require().NoError(err)
	s.Assert().Len(all.Balances, 2)
}

func (s *TestSuite) TestQueryServer_PendingWithdrawals() {
	s.deposit(s.alice, 1000, "")
	s.deposit(s.bob, 1000, "")
	aliceID := s.beginRedeem(s.alice, 100, "")
	s.beginRedeem(s.bob, 100, "")
	s.beginRedeem(s.bob, 50, s.alice)
	server := keeper.NewQueryServer(s.k)

	all, err := server.PendingWithdrawals(s.ctx, &types.QueryPendingWithdrawalsRequest{})
	s.Require().NoError(err)
	s.Assert().Len(all.PendingWithdrawals, 3)

	page, err := server.PendingWithdrawals(s.ctx, &types.QueryPendingWithdrawalsRequest{Pagination: &query.PageRequest{Limit: 2}})
	s.Require().NoError(err)
	s.Assert().Len(page.PendingWithdrawals, 2)
	s.Assert().Equal(aliceID, page.PendingWithdrawals[0].ID, "ordered by id")

	bobs, err := server.PendingWithdrawals(s.ctx, &types.QueryPendingWithdrawalsRequest{Owner: s.bob})
	s.Require().NoError(err)
	s.Require().Len(bobs.PendingWithdrawals, 2)
	for _, entry := range bobs.PendingWithdrawals {
		s.Assert().Equal(s.bob, entry.Withdrawal.Owner)
	}
}
