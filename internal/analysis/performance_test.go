package analysis

import (
	"math"
	"testing"

	"earnings-analyzer/internal/types"
)

func fp(v float64) *float64 { return &v }

func TestComputePerformance(t *testing.T) {
	window := types.PriceWindow{
		PriceAtCall: fp(100),
		Price1Week:  fp(110),
		Price1Month: fp(90),
		Price3Month: fp(125),
	}

	perf := ComputePerformance(window)

	if perf.Performance1Week == nil || math.Abs(*perf.Performance1Week-0.10) > 1e-9 {
		t.Errorf("expected 1 week performance 0.10, got %v", perf.Performance1Week)
	}
	if perf.Performance1Month == nil || math.Abs(*perf.Performance1Month+0.10) > 1e-9 {
		t.Errorf("expected 1 month performance -0.10, got %v", perf.Performance1Month)
	}
	if perf.Performance3Month == nil || math.Abs(*perf.Performance3Month-0.25) > 1e-9 {
		t.Errorf("expected 3 month performance 0.25, got %v", perf.Performance3Month)
	}
}

func TestComputePerformanceMissingAnchor(t *testing.T) {
	window := types.PriceWindow{
		Price1Week:  fp(110),
		Price1Month: fp(120),
		Price3Month: fp(130),
	}

	perf := ComputePerformance(window)

	if perf.Performance1Week != nil || perf.Performance1Month != nil || perf.Performance3Month != nil {
		t.Errorf("expected all performances absent without anchor price, got %+v", perf)
	}
}

func TestComputePerformanceMissingHorizon(t *testing.T) {
	window := types.PriceWindow{
		PriceAtCall: fp(100),
		Price1Week:  fp(110),
	}

	perf := ComputePerformance(window)

	if perf.Performance1Week == nil {
		t.Error("expected 1 week performance to be present")
	}
	if perf.Performance1Month != nil {
		t.Errorf("expected 1 month performance absent, got %v", *perf.Performance1Month)
	}
}

func TestComputePerformanceZeroAnchor(t *testing.T) {
	window := types.PriceWindow{
		PriceAtCall: fp(0),
		Price1Week:  fp(110),
	}

	perf := ComputePerformance(window)

	if perf.Performance1Week != nil {
		t.Errorf("expected absent performance for zero anchor, got %v", *perf.Performance1Week)
	}
}
