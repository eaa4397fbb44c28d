package main

import (
	"fmt"

	"github.com/prism-network/gprism/common/hexutil"
	"github.com/prism-network/gprism/sysaction"
	"github.com/urfave/cli/v2"
)

var commandDeposit = &cli.Command{
	Name:      "deposit",
	Usage:     "build a BOND_DEPOSIT system-action payload",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "maturity",
			Usage:    "bond maturity in days (7-365)",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "fee-bps",
			Usage: "bond fee in basis points (0-100)",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "asset kind; empty or 'native' locks attached value",
		},
		&cli.StringFlag{
			Name:  "principal",
			Usage: "principal in base units (external-asset bonds only)",
		},
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		return printPayload(ctx, sysaction.ActionBondDeposit, &sysaction.BondDepositPayload{
			MaturityDays: ctx.Uint64("maturity"),
			BondFeeBps:   ctx.Uint64("fee-bps"),
			AssetKind:    ctx.String("asset"),
			Principal:    ctx.String("principal"),
		})
	},
}

var commandWithdraw = &cli.Command{
	Name:  "withdraw",
	Usage: "build a BOND_WITHDRAW system-action payload",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "certificate",
			Usage:    "certificate id of the bond",
			Required: true,
		},
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		return printPayload(ctx, sysaction.ActionBondWithdraw, &sysaction.BondWithdrawPayload{
			CertificateID: ctx.Uint64("certificate"),
		})
	},
}

var commandSetFee = &cli.Command{
	Name:  "setfee",
	Usage: "build a TOKEN_SET_FEE system-action payload",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "percent",
			Usage:    "refraction fee percent (1-100)",
			Required: true,
		},
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		return printPayload(ctx, sysaction.ActionTokenSetFee, &sysaction.SetFeePayload{
			Percent: ctx.Uint64("percent"),
		})
	},
}

var commandSetExempt = &cli.Command{
	Name:  "exempt",
	Usage: "build a TOKEN_SET_EXEMPT system-action payload",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "account address to toggle",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "revoke",
			Usage: "remove the exemption instead of granting it",
		},
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		return printPayload(ctx, sysaction.ActionTokenSetExempt, &sysaction.SetExemptPayload{
			Account: ctx.String("account"),
			Exempt:  !ctx.Bool("revoke"),
		})
	},
}

func printPayload(ctx *cli.Context, kind sysaction.ActionKind, payload interface{}) error {
	data, err := sysaction.MakeSysAction(kind, payload)
	if err != nil {
		return err
	}
	if ctx.Bool("json") {
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("Action:  %s\n", kind)
	fmt.Printf("tx.Data: %s\n", hexutil.Encode(data))
	return nil
}
