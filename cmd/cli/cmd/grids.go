// Package cmd - grids commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shadecost/core/matcher"
	"shadecost/core/types"
)

var (
	gridsProductType string
	gridsPriceGroup  string
	gridsSupplier    string
)

// gridsCmd groups grid inspection commands
var gridsCmd = &cobra.Command{
	Use:   "grids",
	Short: "Inspect and match pricing grids",
}

// gridsListCmd lists the catalog's grids for a product type
var gridsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active grids for a product type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}

		grids, err := s.GridsByType(ctx, ownerID, gridsProductType)
		if err != nil {
			return err
		}
		if len(grids) == 0 {
			fmt.Printf("No active grids for product type %q.\n", gridsProductType)
			return nil
		}

		fmt.Printf("%-16s %-28s %-14s %-12s %s\n", "CODE", "NAME", "PRICE GROUP", "SUPPLIER", "SIZE")
		for _, g := range grids {
			size := "no data"
			if !g.Data.IsEmpty() {
				size = fmt.Sprintf("%dx%d", len(g.Data.Rows), len(g.Data.WidthColumns))
			}
			fmt.Printf("%-16s %-28s %-14s %-12s %s\n",
				g.GridCode, g.Name, g.PriceGroup, g.SupplierID, size)
		}
		return nil
	},
}

// gridsMatchCmd runs the auto-matcher against the catalog
var gridsMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Auto-match a grid for a supplier, product type and price group",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}

		m := matcher.New(s, nil)
		result := m.AutoMatch(ctx, types.AutoMatchParams{
			SupplierID:  gridsSupplier,
			ProductType: gridsProductType,
			PriceGroup:  gridsPriceGroup,
			OwnerID:     ownerID,
		})

		fmt.Printf("Match type: %s\n", result.MatchType)
		fmt.Printf("Details:    %s\n", result.MatchDetails)
		if result.Matched() {
			fmt.Printf("Grid:       %s (%s)\n", result.GridCode, result.GridName)
			fmt.Printf("Markup:     %s%%  Discount: %s%%  Fabric included: %t\n",
				result.MarkupPercentage, result.DiscountPercentage, result.IncludesFabricPrice)
		}
		return nil
	},
}

func init() {
	gridsCmd.PersistentFlags().StringVar(&gridsProductType, "product-type", "", "product type")
	gridsCmd.PersistentFlags().StringVar(&gridsPriceGroup, "price-group", "", "price group label")
	gridsCmd.PersistentFlags().StringVar(&gridsSupplier, "supplier", "", "supplier id")

	gridsCmd.AddCommand(gridsListCmd)
	gridsCmd.AddCommand(gridsMatchCmd)
}
