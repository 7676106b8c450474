package resolver

import (
	"context"

	"go.uber.org/zap"

	"shadecost/core/types"
)

// EnrichTemplateWithGrid attaches resolved grid data to a grid-priced
// template so downstream calculators need not re-resolve. The template is
// returned as a shallow copy; the input is never mutated.
//
// Templates that are not grid-priced, or that already carry grid data, pass
// through unchanged. A template missing its system type or price group may
// borrow them from the fabric item; if a price group still cannot be found
// the template is returned unchanged with a warning, not an error.
func (r *Resolver) EnrichTemplateWithGrid(ctx context.Context, template types.Template, fabric *types.FabricItem) types.Template {
	if template.PricingType != types.PricingTypeGrid || template.PricingGridData != nil {
		return template
	}

	systemType := template.SystemType
	priceGroup := template.PriceGroup
	supplierID := template.SupplierID
	if fabric != nil {
		if systemType == "" {
			systemType = fabric.SystemType
		}
		if priceGroup == "" {
			priceGroup = fabric.PriceGroup
		}
		if supplierID == "" {
			supplierID = fabric.SupplierID
		}
	}

	if priceGroup == "" {
		r.log.Warn("grid-priced template has no price group, leaving unenriched",
			zap.String("template_id", template.ID),
			zap.String("template_name", template.Name))
		return template
	}

	result := r.ResolveGridForProduct(ctx, types.ResolveParams{
		ProductType:      template.ProductType,
		SystemType:       systemType,
		FabricPriceGroup: priceGroup,
		FabricSupplierID: supplierID,
		OwnerID:          template.OwnerID,
	})
	if !result.Resolved() {
		r.log.Warn("no grid resolved for template, leaving unenriched",
			zap.String("template_id", template.ID),
			zap.String("details", result.Details))
		return template
	}

	enriched := template
	enriched.PricingGridData = result.GridData
	enriched.ResolvedGridID = result.GridID
	enriched.ResolvedGridCode = result.GridCode
	enriched.ResolvedGridName = result.GridName
	return enriched
}
