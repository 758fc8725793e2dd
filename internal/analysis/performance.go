package analysis

import "earnings-analyzer/internal/types"

// ComputePerformance derives fractional forward returns from an aligned
// price window. A horizon's return is present only when both the anchor
// price and that horizon's price are present; a zero anchor price is
// guarded against and treated as absent rather than dividing.
func ComputePerformance(window types.PriceWindow) types.StockPerformance {
	return types.StockPerformance{
		PriceAtCall:       window.PriceAtCall,
		Price1Week:        window.Price1Week,
		Price1Month:       window.Price1Month,
		Price3Month:       window.Price3Month,
		Performance1Week:  relativeReturn(window.PriceAtCall, window.Price1Week),
		Performance1Month: relativeReturn(window.PriceAtCall, window.Price1Month),
		Performance3Month: relativeReturn(window.PriceAtCall, window.Price3Month),
	}
}

func relativeReturn(atCall, future *float64) *float64 {
	if atCall == nil || future == nil || *atCall == 0 {
		return nil
	}
	r := (*future - *atCall) / *atCall
	return &r
}
