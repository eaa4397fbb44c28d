package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/prism-network/gprism/bond"
	"github.com/urfave/cli/v2"
)

var commandTiers = &cli.Command{
	Name:  "tiers",
	Usage: "print the bond interest-rate and refraction-index tier tables",
	Action: func(ctx *cli.Context) error {
		fmt.Println("Interest rate tiers (maturity days -> yield percent):")
		it := tablewriter.NewWriter(os.Stdout)
		it.SetHeader([]string{"Min Days", "Percent"})
		for _, t := range bond.InterestTiers() {
			it.Append([]string{fmt.Sprintf("%d", t[0]), fmt.Sprintf("%d", t[1])})
		}
		it.Render()

		fmt.Println("Refraction index tiers (maturity days -> index):")
		rt := tablewriter.NewWriter(os.Stdout)
		rt.SetHeader([]string{"Min Days", "Index"})
		for _, t := range bond.RefractionTiers() {
			rt.Append([]string{fmt.Sprintf("%d", t.MinDays), t.Index.String()})
		}
		rt.Render()
		return nil
	},
}
