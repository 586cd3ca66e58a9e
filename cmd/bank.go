package cmd

import (
	"strings"

	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "manage banks",
}

var bankAddCmd = &cobra.Command{
	Use:   "add <asset_id> <symbol> <price_feed_id>",
	Short: "create a bank with fixed risk and rate parameters",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		userStore := provideUserStore(database)
		bankStore := provideBankStore(database)
		positionStore := providePositionStore(database)
		transferStore := provideTransferStore(database)
		oracleService := providePriceOracleService()
		protocolService := provideProtocolService(database, userStore, bankStore, positionStore, transferStore, oracleService)

		flagDecimal := func(name string) decimal.Decimal {
			v, _ := cmd.Flags().GetString(name)
			return number.Decimal(v)
		}

		risk := core.RiskParams{
			MaxLTV:               flagDecimal("max-ltv"),
			LiquidationThreshold: flagDecimal("liquidation-threshold"),
			LiquidationBonus:     flagDecimal("liquidation-bonus"),
			CloseFactor:          flagDecimal("close-factor"),
			ReserveFactor:        flagDecimal("reserve-factor"),
		}

		rates := core.RateParams{
			BaseRate:       flagDecimal("base-rate"),
			Multiplier:     flagDecimal("multiplier"),
			JumpMultiplier: flagDecimal("jump-multiplier"),
			Kink:           flagDecimal("kink"),
		}

		bank, err := protocolService.InitBank(ctx, args[0], strings.ToUpper(args[1]), args[2], risk, rates)
		if err != nil {
			cmd.PrintErrln("create bank error:", err)
			return
		}

		cmd.Println("bank created:", bank.Symbol, bank.AssetID)
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all banks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		banks, err := provideBankStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list banks error:", err)
			return
		}

		for _, bank := range banks {
			cmd.Printf("%-10s %-36s deposits=%s borrows=%s\n",
				bank.Symbol, bank.AssetID,
				bank.TotalDeposits, bank.TotalBorrows)
		}
	},
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankAddCmd, bankListCmd)

	bankAddCmd.Flags().String("max-ltv", "0.8", "max loan to value when borrowing")
	bankAddCmd.Flags().String("liquidation-threshold", "0.85", "collateral weight that triggers liquidation")
	bankAddCmd.Flags().String("liquidation-bonus", "0.05", "liquidator discount on seized collateral")
	bankAddCmd.Flags().String("close-factor", "0.5", "max share of debt repayable per liquidation")
	bankAddCmd.Flags().String("reserve-factor", "0.1", "share of borrow interest kept by the protocol")
	bankAddCmd.Flags().String("base-rate", "0.02", "base borrow rate per year")
	bankAddCmd.Flags().String("multiplier", "0.2", "rate slope below the kink")
	bankAddCmd.Flags().String("jump-multiplier", "2", "rate slope above the kink")
	bankAddCmd.Flags().String("kink", "0.8", "utilization point where the jump slope starts")
}
