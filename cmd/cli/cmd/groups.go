// Package cmd - groups command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shadecost/core/resolver"
)

var groupsProductType string

// groupsCmd lists the catalog's available price groups
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List available price groups for a product type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}

		r := resolver.New(s, nil)
		groups, err := r.GetAvailablePriceGroups(ctx, groupsProductType, ownerID)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Printf("No price groups for product type %q.\n", groupsProductType)
			return nil
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringVar(&groupsProductType, "product-type", "", "product type")
}
