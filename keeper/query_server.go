package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/provlabs/mtvault/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

// NewQueryServer creates a new QueryServer for the module.
func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

// queryError maps keeper errors onto gRPC status codes.
func queryError(err error) error {
	switch {
	case errors.Is(err, types.ErrVaultNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, types.ErrInvalidAmount), errors.Is(err, types.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrOverflow):
		return status.Error(codes.OutOfRange, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// Vault returns the vault and the number of shares issued against it.
func (k queryServer) Vault(goCtx context.Context, req *types.QueryVaultRequest) (*types.QueryVaultResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	k.mu.Lock()
	defer k.mu.Unlock()

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryVaultResponse{Vault: pool.vault, TotalShares: pool.totalShares}, nil
}

// ConvertToShares returns the shares a deposit of assets would mint.
func (k queryServer) ConvertToShares(goCtx context.Context, req *types.QueryConvertToSharesRequest) (*types.QueryConvertToSharesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	shares, err := k.Keeper.ConvertToShares(sdk.UnwrapSDKContext(goCtx), req.Assets)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryConvertToSharesResponse{Shares: shares}, nil
}

// ConvertToAssets returns the assets shares are worth.
func (k queryServer) ConvertToAssets(goCtx context.Context, req *types.QueryConvertToAssetsRequest) (*types.QueryConvertToAssetsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	assets, err := k.Keeper.ConvertToAssets(sdk.UnwrapSDKContext(goCtx), req.Shares)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryConvertToAssetsResponse{Assets: assets}, nil
}

// PreviewWithdraw returns the shares a withdrawal of assets would burn.
func (k queryServer) PreviewWithdraw(goCtx context.Context, req *types.QueryPreviewWithdrawRequest) (*types.QueryPreviewWithdrawResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	shares, err := k.Keeper.PreviewWithdraw(sdk.UnwrapSDKContext(goCtx), req.Assets)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryPreviewWithdrawResponse{Shares: shares}, nil
}

// MaxRedeem returns the shares an owner can redeem.
func (k queryServer) MaxRedeem(goCtx context.Context, req *types.QueryMaxRedeemRequest) (*types.QueryMaxRedeemResponse, error) {
	if req == nil || req.Owner == "" {
		return nil, status.Error(codes.InvalidArgument, "owner must be provided")
	}
	shares, err := k.Keeper.MaxRedeem(sdk.UnwrapSDKContext(goCtx), req.Owner)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryMaxRedeemResponse{Shares: shares}, nil
}

// MaxWithdraw returns the assets an owner can withdraw.
func (k queryServer) MaxWithdraw(goCtx context.Context, req *types.QueryMaxWithdrawRequest) (*types.QueryMaxWithdrawResponse, error) {
	if req == nil || req.Owner == "" {
		return nil, status.Error(codes.InvalidArgument, "owner must be provided")
	}
	assets, err := k.Keeper.MaxWithdraw(sdk.UnwrapSDKContext(goCtx), req.Owner)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryMaxWithdrawResponse{Assets: assets}, nil
}

// Balance returns the share balance of an account.
func (k queryServer) Balance(goCtx context.Context, req *types.QueryBalanceRequest) (*types.QueryBalanceResponse, error) {
	if req == nil || req.Account == "" {
		return nil, status.Error(codes.InvalidArgument, "account must be provided")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	k.mu.Lock()
	defer k.mu.Unlock()

	shares, err := k.Shares.BalanceOf(ctx, req.Account)
	if err != nil {
		return nil, queryError(err)
	}
	return &types.QueryBalanceResponse{Shares: shares}, nil
}

// Balances returns a paginated list of all share balances.
func (k queryServer) Balances(goCtx context.Context, req *types.QueryBalancesRequest) (*types.QueryBalancesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	k.mu.Lock()
	defer k.mu.Unlock()

	balances, pageRes, err := query.CollectionPaginate(
		ctx,
		k.Shares.Balances,
		req.Pagination,
		func(account string, shares math.Int) (types.ShareBalance, error) {
			return types.ShareBalance{Account: account, Shares: shares}, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryBalancesResponse{Balances: balances, Pagination: pageRes}, nil
}

// PendingWithdrawals returns withdrawals whose transfer is not resolved yet.
func (k queryServer) PendingWithdrawals(goCtx context.Context, req *types.QueryPendingWithdrawalsRequest) (*types.QueryPendingWithdrawalsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	k.mu.Lock()
	defer k.mu.Unlock()

	if req.Owner != "" {
		entries := []types.PendingWithdrawalEntry{}
		err := k.Keeper.PendingWithdrawals.WalkByOwner(ctx, req.Owner, func(id uint64, pw types.PendingWithdrawal) (bool, error) {
			entries = append(entries, types.PendingWithdrawalEntry{ID: id, Withdrawal: pw})
			return false, nil
		})
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return &types.QueryPendingWithdrawalsResponse{PendingWithdrawals: entries}, nil
	}

	entries, pageRes, err := query.CollectionPaginate(
		ctx,
		k.Keeper.PendingWithdrawals.IndexedMap,
		req.Pagination,
		func(id uint64, pw types.PendingWithdrawal) (types.PendingWithdrawalEntry, error) {
			return types.PendingWithdrawalEntry{ID: id, Withdrawal: pw}, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryPendingWithdrawalsResponse{PendingWithdrawals: entries, Pagination: pageRes}, nil
}
