// Package cmd - quote command
package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shadecost/core/calculator"
	"shadecost/core/money"
	"shadecost/core/resolver"
	"shadecost/core/types"
	"shadecost/internal/config"
)

var (
	quoteMethod      string
	quoteBaseCost    string
	quoteWidth       float64
	quoteDrop        float64
	quoteQuantity    int
	quoteFullness    float64
	quoteFabricWidth float64
	quoteFabricCost  string
	quoteFabricUsage float64
	quoteProductType string
	quoteSystemType  string
	quotePriceGroup  string
	quoteSupplier    string
)

// quoteCmd calculates a price for one product configuration
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a price for a product configuration",
	Long: `Calculate a quote price.

Dimensions are millimeters; fabric width is centimeters. For the
pricing-grid method the catalog is consulted to auto-match a grid from
the product type, price group and supplier.

Examples:
  shadecost quote --method per-meter --base-cost 10 --width 3000
  shadecost quote --method per-panel --base-cost 50 --width 2000 --fullness 2 --fabric-width 140
  shadecost quote --method pricing-grid --width 1200 --drop 1600 \
      --product-type roller_blinds --price-group "Group A"`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteMethod, "method", "m", "fixed", "pricing method")
	quoteCmd.Flags().StringVar(&quoteBaseCost, "base-cost", "0", "base cost")
	quoteCmd.Flags().Float64VarP(&quoteWidth, "width", "w", 0, "rail width in mm")
	quoteCmd.Flags().Float64VarP(&quoteDrop, "drop", "d", 0, "drop in mm")
	quoteCmd.Flags().IntVarP(&quoteQuantity, "quantity", "q", 1, "quantity")
	quoteCmd.Flags().Float64Var(&quoteFullness, "fullness", 0, "fullness ratio (per-panel)")
	quoteCmd.Flags().Float64Var(&quoteFabricWidth, "fabric-width", 0, "fabric width in cm (per-panel)")
	quoteCmd.Flags().StringVar(&quoteFabricCost, "fabric-cost", "0", "fabric cost per meter")
	quoteCmd.Flags().Float64Var(&quoteFabricUsage, "fabric-usage", 0, "fabric usage in meters")
	quoteCmd.Flags().StringVar(&quoteProductType, "product-type", "", "product type (grid resolution)")
	quoteCmd.Flags().StringVar(&quoteSystemType, "system-type", "", "system type (grid resolution)")
	quoteCmd.Flags().StringVar(&quotePriceGroup, "price-group", "", "fabric price group (grid resolution)")
	quoteCmd.Flags().StringVar(&quoteSupplier, "supplier", "", "fabric supplier id (grid resolution)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	baseCost, err := decimal.NewFromString(quoteBaseCost)
	if err != nil {
		return fmt.Errorf("invalid base cost %q: %w", quoteBaseCost, err)
	}
	fabricCost, err := decimal.NewFromString(quoteFabricCost)
	if err != nil {
		return fmt.Errorf("invalid fabric cost %q: %w", quoteFabricCost, err)
	}

	symbol := cfg.Pricing.CurrencySymbol
	if symbol == "" {
		symbol = money.Symbol(money.Currency(cfg.Pricing.DefaultCurrency))
	}

	pctx := types.PricingContext{
		BaseCost:       baseCost,
		RailWidth:      quoteWidth,
		Drop:           quoteDrop,
		Quantity:       quoteQuantity,
		FabricCost:     fabricCost,
		FabricUsage:    quoteFabricUsage,
		CurrencySymbol: symbol,
	}
	if quoteFullness > 0 {
		pctx.Fullness = &quoteFullness
	}
	if quoteFabricWidth > 0 {
		pctx.FabricWidth = &quoteFabricWidth
	}

	method := types.PricingMethod(quoteMethod)

	// Grid pricing needs a resolved grid first.
	if method == types.MethodPricingGrid && quotePriceGroup != "" {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		r := resolver.New(s, nil)
		resolution := r.ResolveGridForProduct(ctx, types.ResolveParams{
			ProductType:      quoteProductType,
			SystemType:       quoteSystemType,
			FabricPriceGroup: quotePriceGroup,
			FabricSupplierID: quoteSupplier,
			OwnerID:          ownerID,
		})
		fmt.Printf("Grid:        %s\n", resolution.Details)
		pctx.GridData = resolution.GridData
	}

	result := calculator.Calculate(method, pctx)

	fmt.Printf("Quote:       %s\n", uuid.NewString())
	fmt.Printf("Method:      %s\n", method)
	fmt.Printf("Calculation: %s\n", result.Calculation)
	if result.Err != "" {
		fmt.Printf("Error:       %s\n", result.Err)
	}
	if result.Unpriced != "" {
		fmt.Printf("Note:        %s\n", result.Unpriced)
	}
	fmt.Printf("Price:       %s\n", money.Format(result.Cost, symbol))
	return nil
}
