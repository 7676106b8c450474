// Package calculator implements the pricing strategy calculator.
//
// Calculate is pure and total over the pricing method set: every branch
// returns a cost and a human-readable calculation string, and unknown
// methods fall back to fixed behavior so legacy catalog data keeps pricing
// instead of erroring.
package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"shadecost/core/money"
	"shadecost/core/types"
	"shadecost/core/units"
)

// Calculate computes a price for the given method and context.
// Dimensions in the context are millimeters; FabricWidth is centimeters.
func Calculate(method types.PricingMethod, ctx types.PricingContext) types.PricingResult {
	if ctx.Quantity <= 0 {
		ctx.Quantity = 1
	}
	symbol := ctx.CurrencySymbol
	if symbol == "" {
		symbol = money.Symbol(money.GBP)
	}

	switch method {
	case types.MethodFixed:
		return perItem(ctx, symbol, "fixed price")

	case types.MethodPerUnit:
		return perItem(ctx, symbol, "per unit")

	case types.MethodPerDrop:
		return perItem(ctx, symbol, "per drop")

	case types.MethodPerPanel:
		return perPanel(ctx, symbol)

	case types.MethodPerMeter, types.MethodPerMetre, types.MethodPerLinearMeter:
		return perLinear(ctx, symbol, units.MmToM(ctx.RailWidth), "m")

	case types.MethodPerYard, types.MethodPerLinearYard:
		return perLinear(ctx, symbol, units.MmToYd(ctx.RailWidth), "yd")

	case types.MethodPerSqm, types.MethodPerSquareMeter:
		return perSquareMeter(ctx, symbol)

	case types.MethodPercentage:
		return percentage(ctx, symbol)

	case types.MethodInherit:
		return inherit(ctx)

	case types.MethodPricingGrid:
		return fromGrid(ctx, symbol)

	default:
		// Unknown method tags exist in legacy data; price them as fixed
		// rather than blocking the quote, and say so.
		result := perItem(ctx, symbol, "fixed price")
		result.Unpriced = fmt.Sprintf("unknown pricing method %q, priced as fixed", method)
		result.Calculation += " (unknown method, treated as fixed)"
		return result
	}
}

// perItem is baseCost x quantity, shared by fixed, per-unit and per-drop
func perItem(ctx types.PricingContext, symbol, label string) types.PricingResult {
	qty := decimal.NewFromInt(int64(ctx.Quantity))
	cost := ctx.BaseCost.Mul(qty)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("%s %s x %d = %s",
			label, money.Format(ctx.BaseCost, symbol), ctx.Quantity, money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      1,
			UnitCost:   ctx.BaseCost,
			Multiplier: ctx.Quantity,
		},
	}
}

// perPanel prices curtains by the number of fabric panels needed:
// ceil((railWidth x fullness) / fabricWidth). Fullness and fabric width
// have no sane defaults; their absence is a configuration error.
func perPanel(ctx types.PricingContext, symbol string) types.PricingResult {
	if ctx.Fullness == nil {
		return types.PricingResult{
			Cost:        decimal.Zero,
			Calculation: "cannot price per panel: fullness not configured",
			Err:         types.ErrFullnessRequired,
		}
	}
	if ctx.FabricWidth == nil {
		return types.PricingResult{
			Cost:        decimal.Zero,
			Calculation: "cannot price per panel: fabric width not configured",
			Err:         types.ErrFabricWidthRequired,
		}
	}

	fabricWidthMm := units.CmToMm(*ctx.FabricWidth)
	panels := int(math.Ceil((ctx.RailWidth * *ctx.Fullness) / fabricWidthMm))
	if panels < 1 {
		panels = 1
	}

	qty := decimal.NewFromInt(int64(ctx.Quantity))
	cost := ctx.BaseCost.Mul(decimal.NewFromInt(int64(panels))).Mul(qty)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("%d panels (%.0fmm x %.1f fullness / %.0fcm fabric) x %s x %d = %s",
			panels, ctx.RailWidth, *ctx.Fullness, *ctx.FabricWidth,
			money.Format(ctx.BaseCost, symbol), ctx.Quantity, money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      float64(panels),
			UnitCost:   ctx.BaseCost,
			Multiplier: ctx.Quantity,
		},
	}
}

// perLinear is baseCost x (railWidth in the billing unit) x quantity
func perLinear(ctx types.PricingContext, symbol string, length float64, unit string) types.PricingResult {
	qty := decimal.NewFromInt(int64(ctx.Quantity))
	cost := ctx.BaseCost.Mul(decimal.NewFromFloat(length)).Mul(qty)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("%s/%s x %.3f%s x %d = %s",
			money.Format(ctx.BaseCost, symbol), unit, length, unit, ctx.Quantity,
			money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      length,
			UnitCost:   ctx.BaseCost,
			Multiplier: ctx.Quantity,
		},
	}
}

// perSquareMeter is baseCost x width(m) x drop(m) x quantity
func perSquareMeter(ctx types.PricingContext, symbol string) types.PricingResult {
	widthM := units.MmToM(ctx.RailWidth)
	dropM := units.MmToM(ctx.Drop)
	area := widthM * dropM

	qty := decimal.NewFromInt(int64(ctx.Quantity))
	cost := ctx.BaseCost.Mul(decimal.NewFromFloat(area)).Mul(qty)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("%s/sqm x %.3fsqm (%.2fm x %.2fm) x %d = %s",
			money.Format(ctx.BaseCost, symbol), area, widthM, dropM, ctx.Quantity,
			money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      area,
			UnitCost:   ctx.BaseCost,
			Multiplier: ctx.Quantity,
		},
	}
}

// percentage treats baseCost as a percentage of the total fabric cost
// (fabricCost x fabricUsage), not of baseCost itself
func percentage(ctx types.PricingContext, symbol string) types.PricingResult {
	fabricTotal := ctx.FabricCost.Mul(decimal.NewFromFloat(ctx.FabricUsage))
	cost := ctx.BaseCost.Div(decimal.NewFromInt(100)).Mul(fabricTotal)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("%s%% of fabric cost %s (%s x %.2fm) = %s",
			ctx.BaseCost.String(), money.Format(fabricTotal, symbol),
			money.Format(ctx.FabricCost, symbol), ctx.FabricUsage,
			money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      1,
			UnitCost:   cost,
			Multiplier: 1,
		},
	}
}

// inherit follows the parent window covering's method. Only one level of
// indirection is followed: a parent that is itself inherit (or absent)
// resolves to fixed, so recursion terminates by construction.
func inherit(ctx types.PricingContext) types.PricingResult {
	parent := ctx.ParentMethod
	if parent == "" || parent == types.MethodInherit {
		parent = types.MethodFixed
	}
	child := ctx
	child.ParentMethod = ""
	return Calculate(parent, child)
}

// fromGrid looks the price up in the resolved grid at the item's
// dimensions. Without grid data it degrades to fixed behavior and flags
// the degradation in the calculation string.
func fromGrid(ctx types.PricingContext, symbol string) types.PricingResult {
	if ctx.GridData.IsEmpty() {
		result := perItem(ctx, symbol, "fixed price")
		result.Unpriced = "pricing grid data unavailable, priced as fixed"
		result.Calculation += " (no pricing grid data, treated as fixed)"
		return result
	}

	widthCm := units.MmToCm(ctx.RailWidth)
	dropCm := units.MmToCm(ctx.Drop)
	unitPrice := ctx.GridData.PriceFor(widthCm, dropCm)

	qty := decimal.NewFromInt(int64(ctx.Quantity))
	cost := unitPrice.Mul(qty)
	return types.PricingResult{
		Cost: cost,
		Calculation: fmt.Sprintf("grid price %s at %.0fcm x %.0fcm x %d = %s",
			money.Format(unitPrice, symbol), widthCm, dropCm, ctx.Quantity,
			money.Format(cost, symbol)),
		Breakdown: &types.Breakdown{
			Units:      1,
			UnitCost:   unitPrice,
			Multiplier: ctx.Quantity,
		},
	}
}
