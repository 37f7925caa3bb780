package mock

import (
	"context"

	"github.com/fwojciec/medsearch"
)

var _ medsearch.FormAnalyzer = (*FormAnalyzer)(nil)

// FormAnalyzer is a mock implementation of medsearch.FormAnalyzer.
type FormAnalyzer struct {
	AnalyzeFormFn func(ctx context.Context, title string) (medsearch.FormAnalysis, error)
}

func (a *FormAnalyzer) AnalyzeForm(ctx context.Context, title string) (medsearch.FormAnalysis, error) {
	return a.AnalyzeFormFn(ctx, title)
}
