package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

// NewMsgServer returns the state-mutating entry points of the vault.
// Every message must be signed by its Signer, as carried by types.WithSigner.
func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

type signedMsg interface {
	ValidateBasic() error
	Signer() string
}

// authorize checks msg and that the authenticated signer of goCtx may act for it.
func authorize(goCtx context.Context, msg signedMsg) error {
	if err := msg.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}
	signer, ok := types.SignerFromContext(goCtx)
	if !ok {
		return sdkerrors.Wrap(types.ErrUnauthorized, "missing signer")
	}
	if signer != msg.Signer() {
		return sdkerrors.Wrapf(types.ErrUnauthorized, "%s cannot act for %s", signer, msg.Signer())
	}
	return nil
}

// Redeem burns shares for assets.
func (k msgServer) Redeem(goCtx context.Context, msg *types.MsgRedeemRequest) (*types.MsgRedeemResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := authorize(goCtx, msg); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	assets, err := k.Keeper.Redeem(ctx, msg.Owner, msg.Shares, msg.Receiver, msg.Memo)
	if err != nil {
		return nil, err
	}
	return &types.MsgRedeemResponse{Assets: assets}, nil
}

// Withdraw pays out assets by burning the shares they require.
func (k msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdrawRequest) (*types.MsgWithdrawResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := authorize(goCtx, msg); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	shares, err := k.Keeper.Withdraw(ctx, msg.Owner, msg.Assets, msg.Receiver, msg.Memo)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{Shares: shares}, nil
}

// TransferShares moves shares from the signer to another account.
func (k msgServer) TransferShares(goCtx context.Context, msg *types.MsgTransferSharesRequest) (*types.MsgTransferSharesResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := authorize(goCtx, msg); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.TransferShares(ctx, msg.Sender, msg.Receiver, msg.Amount, msg.Memo); err != nil {
		return nil, err
	}
	return &types.MsgTransferSharesResponse{}, nil
}
