package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/enrichment"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <destination>...",
		Short: "Show the country, currency and emergency numbers a destination resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := enrichment.DefaultCountryTable()
			w := cmd.OutOrStdout()
			for _, dest := range args {
				country, ok := table.Resolve(dest)
				note := ""
				if !ok {
					note = " (fallback)"
				}
				em := table.EmergencyContacts(country)
				fmt.Fprintf(w, "%s\n  country:   %s%s\n  currency:  %s\n  police:    %s\n  ambulance: %s\n",
					dest, country, note, table.CurrencyCode(country), em.Police, em.Ambulance)
				if em.TouristPolice != "" {
					fmt.Fprintf(w, "  tourist police: %s\n", em.TouristPolice)
				}
			}
			return nil
		},
	}
}
