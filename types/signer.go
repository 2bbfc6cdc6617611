package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type signerKey struct{}

// WithSigner returns ctx carrying the account that authenticated the
// message being handled. The host sets it after verifying the signature.
func WithSigner(ctx sdk.Context, signer string) sdk.Context {
	return ctx.WithValue(signerKey{}, signer)
}

// SignerFromContext returns the authenticated account carried by ctx.
func SignerFromContext(ctx context.Context) (string, bool) {
	signer, ok := ctx.Value(signerKey{}).(string)
	return signer, ok && signer != ""
}
