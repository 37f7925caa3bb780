package mock

import (
	"context"

	"github.com/fwojciec/medsearch"
)

var _ medsearch.WarningDetector = (*WarningDetector)(nil)

// WarningDetector is a mock implementation of medsearch.WarningDetector.
type WarningDetector struct {
	DetectWarningFn func(html string) medsearch.WarningResult
}

func (d *WarningDetector) DetectWarning(html string) medsearch.WarningResult {
	return d.DetectWarningFn(html)
}

var _ medsearch.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of medsearch.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) medsearch.TitleResult
}

func (e *TitleExtractor) ExtractTitle(html string) medsearch.TitleResult {
	return e.ExtractTitleFn(html)
}

var _ medsearch.IngredientExtractor = (*IngredientExtractor)(nil)

// IngredientExtractor is a mock implementation of medsearch.IngredientExtractor.
type IngredientExtractor struct {
	ExtractIngredientsFn func(ctx context.Context, html string) (medsearch.IngredientResult, error)
}

func (e *IngredientExtractor) ExtractIngredients(ctx context.Context, html string) (medsearch.IngredientResult, error) {
	return e.ExtractIngredientsFn(ctx, html)
}
