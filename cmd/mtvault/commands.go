package main

import (
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/provlabs/mtvault"
	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

type conversion func(amount, totalAssets, totalShares sdkmath.Int) (sdkmath.Int, error)

func ConvertToSharesCmd(v *viper.Viper) *cobra.Command {
	return conversionCmd(v, "convert-to-shares [assets]", "Shares minted by a deposit of assets, rounded down",
		func(amount, totalAssets, totalShares sdkmath.Int) (sdkmath.Int, error) {
			return utils.SharesForAssets(amount, totalAssets, totalShares, utils.RoundDown)
		})
}

func ConvertToAssetsCmd(v *viper.Viper) *cobra.Command {
	return conversionCmd(v, "convert-to-assets [shares]", "Assets paid for redeeming shares, rounded down",
		func(amount, totalAssets, totalShares sdkmath.Int) (sdkmath.Int, error) {
			return utils.AssetsForShares(amount, totalAssets, totalShares, utils.RoundDown)
		})
}

func PreviewWithdrawCmd(v *viper.Viper) *cobra.Command {
	return conversionCmd(v, "preview-withdraw [assets]", "Shares burned by a withdrawal of assets, rounded up",
		func(amount, totalAssets, totalShares sdkmath.Int) (sdkmath.Int, error) {
			return utils.SharesForAssets(amount, totalAssets, totalShares, utils.RoundUp)
		})
}

func conversionCmd(v *viper.Viper, use, short string, convert conversion) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			totalAssets, err := parseAmount(flagTotalAssets, v.GetString(flagTotalAssets))
			if err != nil {
				return err
			}
			totalShares, err := parseAmount(flagTotalShares, v.GetString(flagTotalShares))
			if err != nil {
				return err
			}

			logger.Debug("converting", "amount", amount.String(), "total_assets", totalAssets.String(), "total_shares", totalShares.String())
			result, err := convert(amount, totalAssets, totalShares)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
	cmd.Flags().String(flagTotalAssets, "0", "Total assets held by the vault")
	cmd.Flags().String(flagTotalShares, "0", "Total shares issued by the vault")
	return cmd
}

func ValidateGenesisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate an mtvault genesis document and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read genesis file: %w", err)
			}
			genesis, err := mtvault.DecodeGenesis(bz)
			if err != nil {
				return err
			}
			logger.Debug("genesis decoded", "file", args[0], "balances", len(genesis.Balances), "pending_withdrawals", len(genesis.PendingWithdrawals))

			out := cmd.OutOrStdout()
			totalShares, err := utils.SumAmounts(utils.Map(genesis.Balances, func(b types.ShareBalance) sdkmath.Int { return b.Shares }))
			if err != nil {
				return fmt.Errorf("failed to total shares: %w", err)
			}

			if genesis.Vault == nil {
				fmt.Fprintln(out, "vault: not initialized")
			} else {
				fmt.Fprintf(out, "vault: %s/%s owned by %s\n", genesis.Vault.AssetRef, genesis.Vault.AssetTokenID, genesis.Vault.Owner)
				meta := genesis.Vault.Metadata
				fmt.Fprintf(out, "shares: %s (%s), %d decimals\n", meta.Name, meta.Symbol, meta.Decimals)
				fmt.Fprintf(out, "total assets: %s\n", genesis.Vault.TotalAssets)
			}
			fmt.Fprintf(out, "total shares: %s across %d accounts\n", totalShares, len(genesis.Balances))

			owner := v.GetString(flagOwner)
			pending := 0
			for entry := range utils.Filter(genesis.PendingWithdrawals, func(e types.PendingWithdrawalEntry) bool {
				return owner == "" || e.Withdrawal.Owner == owner
			}) {
				pending++
				fmt.Fprintf(out, "pending withdrawal %d: %s shares for %s assets to %s\n",
					entry.ID, entry.Withdrawal.Shares, entry.Withdrawal.Assets, entry.Withdrawal.Receiver)
			}
			fmt.Fprintf(out, "pending withdrawals: %d\n", pending)
			return nil
		},
	}
	cmd.Flags().String(flagOwner, "", "Only list pending withdrawals of this owner")
	return cmd
}

func parseAmount(name, s string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid %s %q", name, s)
	}
	if err := types.ValidateAmount(name, amount); err != nil {
		return sdkmath.Int{}, err
	}
	return amount, nil
}
