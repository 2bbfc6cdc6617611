package types

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/types/query"
)

type QueryVaultRequest struct{}

type QueryVaultResponse struct {
	Vault       Vault       `json:"vault"`
	TotalShares sdkmath.Int `json:"total_shares"`
}

type QueryConvertToSharesRequest struct {
	Assets sdkmath.Int `json:"assets"`
}

type QueryConvertToSharesResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryConvertToAssetsRequest struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryConvertToAssetsResponse struct {
	Assets sdkmath.Int `json:"assets"`
}

type QueryPreviewWithdrawRequest struct {
	Assets sdkmath.Int `json:"assets"`
}

type QueryPreviewWithdrawResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryMaxRedeemRequest struct {
	Owner string `json:"owner"`
}

type QueryMaxRedeemResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryMaxWithdrawRequest struct {
	Owner string `json:"owner"`
}

type QueryMaxWithdrawResponse struct {
	Assets sdkmath.Int `json:"assets"`
}

type QueryBalanceRequest struct {
	Account string `json:"account"`
}

type QueryBalanceResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryBalancesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryBalancesResponse struct {
	Balances   []ShareBalance      `json:"balances"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryPendingWithdrawalsRequest lists pending withdrawals. When Owner is set
// only that owner's withdrawals are returned and Pagination is ignored.
type QueryPendingWithdrawalsRequest struct {
	Owner      string             `json:"owner,omitempty"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPendingWithdrawalsResponse struct {
	PendingWithdrawals []PendingWithdrawalEntry `json:"pending_withdrawals"`
	Pagination         *query.PageResponse      `json:"pagination,omitempty"`
}

// QueryServer is the read-only surface of the vault.
type QueryServer interface {
	Vault(context.Context, *QueryVaultRequest) (*QueryVaultResponse, error)
	ConvertToShares(context.Context, *QueryConvertToSharesRequest) (*QueryConvertToSharesResponse, error)
	ConvertToAssets(context.Context, *QueryConvertToAssetsRequest) (*QueryConvertToAssetsResponse, error)
	PreviewWithdraw(context.Context, *QueryPreviewWithdrawRequest) (*QueryPreviewWithdrawResponse, error)
	MaxRedeem(context.Context, *QueryMaxRedeemRequest) (*QueryMaxRedeemResponse, error)
	MaxWithdraw(context.Context, *QueryMaxWithdrawRequest) (*QueryMaxWithdrawResponse, error)
	Balance(context.Context, *QueryBalanceRequest) (*QueryBalanceResponse, error)
	Balances(context.Context, *QueryBalancesRequest) (*QueryBalancesResponse, error)
	PendingWithdrawals(context.Context, *QueryPendingWithdrawalsRequest) (*QueryPendingWithdrawalsResponse, error)
}
