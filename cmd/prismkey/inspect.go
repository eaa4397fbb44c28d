package main

import (
	"fmt"

	"github.com/prism-network/gprism/bond"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/state"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/prismdb/leveldb"
	"github.com/prism-network/gprism/token"
	"github.com/prism-network/gprism/vesting"
	"github.com/urfave/cli/v2"
)

var commandInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "inspect a committed state directory",
	ArgsUsage: "<statedir>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "account",
			Usage: "also print the balance and exemption flag of this address",
		},
		&cli.Uint64Flag{
			Name:  "certificate",
			Usage: "also print the bond record for this certificate id",
		},
	},
	Action: inspect,
}

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: prismkey inspect <statedir>")
	}
	db, err := leveldb.New(ctx.Args().First(), 16, 16, true)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer db.Close()

	st := state.New(db)
	fmt.Printf("Fee pool:        %v\n", token.FeePool(st))
	fmt.Printf("Total minted:    %v\n", token.TotalMinted(st))
	fmt.Printf("Total burned:    %v\n", token.TotalBurned(st))
	fmt.Printf("Fee percent:     %d\n", token.RefractionFeePercent(st, nil))
	fmt.Printf("Mint fee bps:    %d\n", vesting.CurrentMintFeeBps(st))
	fmt.Printf("Tracked year:    %d\n", vesting.LastYearIndex(st))
	fmt.Printf("Last epoch time: %d\n", bond.LastEpochTime(st))
	fmt.Printf("Reward index:    %v\n", bond.RewardShareIndex(st))
	fmt.Printf("Pool balance:    %v\n", st.GetBalance(params.TokenAddress))

	if acct := ctx.String("account"); acct != "" {
		if !common.IsHexAddress(acct) {
			return fmt.Errorf("invalid account address: %s", acct)
		}
		addr := common.HexToAddress(acct)
		fmt.Printf("Account %s balance=%v exempt=%v\n",
			addr.Hex(), token.BalanceOf(st, addr), token.IsFeeExempt(st, addr))
	}
	if id := ctx.Uint64("certificate"); id != 0 {
		b, err := bond.GetBond(st, id)
		if err != nil {
			return err
		}
		fmt.Printf("Bond %d principal=%v maturityDays=%d index=%s withdrawn=%v asset=%s\n",
			id, b.Principal, b.MaturityDays, b.RefractionIndex, b.Withdrawn, b.AssetKind)
	}
	return nil
}
