package finance

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestPassiveYears(t *testing.T) {
	tests := []struct {
		name     string
		params   InvestmentParameters
		expected int
		wantErr  bool
	}{
		{"Default inputs", InvestmentParameters{ActiveYears: 25, CurrentAge: 30}, 14, false},
		{"Ends exactly at pension age", InvestmentParameters{ActiveYears: 39, CurrentAge: 30}, 0, false},
		{"Past pension age", InvestmentParameters{ActiveYears: 40, CurrentAge: 30}, 0, true},
		{"Newborn saver", InvestmentParameters{ActiveYears: 40, CurrentAge: 0}, 29, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.PassiveYears()
			if tt.wantErr {
				if !errors.Is(err, ErrPensionAgeExceeded) {
					t.Fatalf("PassiveYears() error = %v, expected ErrPensionAgeExceeded", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PassiveYears() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("PassiveYears() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestTopUp(t *testing.T) {
	tests := []struct {
		name     string
		cost     float64
		rent     float64
		expected float64
	}{
		{"Ownership more expensive", 1522.63, 1200, 322.63},
		{"Rent more expensive", 900, 1200, 0},
		{"Equal costs", 1200, 1200, 0},
		{"Zero cost", 0, 1200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopUp(tt.cost, tt.rent)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("TopUp(%.2f, %.2f) = %.2f, expected %.2f", tt.cost, tt.rent, got, tt.expected)
			}
		})
	}
}

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		monthly  float64
		rate     float64
		years    int
		expected float64
	}{
		{"Contributions only", 0, 500, 0.05, 25, 286362.59},
		{"Capital only", 10000, 0, 0.05, 2, 11025.00},
		{"Zero rate", 1000, 100, 0, 10, 13000.00},
		{"Zero years", 1000, 100, 0.05, 0, 1000.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FutureValue(tt.start, tt.monthly, tt.rate, tt.years)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("FutureValue() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestProjectActiveAndPassive(t *testing.T) {
	processor := NewInvestmentProcessor(zap.NewNop())

	params := InvestmentParameters{
		StartingCapital:     0,
		MonthlyContribution: 500,
		AnnualReturnPercent: 5,
		ActiveYears:         25,
		CurrentAge:          30,
	}

	series, err := processor.Project(params, 0)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if series.Years() != 39 {
		t.Fatalf("expected 39 years, got %d", series.Years())
	}
	if series.PassiveYears != 14 {
		t.Errorf("expected 14 passive years, got %d", series.PassiveYears)
	}

	if math.Abs(series.ActiveValue()-286362.59) > 0.01 {
		t.Errorf("ActiveValue() = %.2f, expected 286362.59", series.ActiveValue())
	}

	expectedFinal := series.ActiveValue() * math.Pow(1.05, 14)
	if series.Final() != expectedFinal {
		t.Errorf("Final() = %v, expected closed form %v", series.Final(), expectedFinal)
	}
	if math.Abs(series.PassiveGrowth()-(expectedFinal-series.ActiveValue())) > 1e-6 {
		t.Errorf("PassiveGrowth() = %.2f, expected %.2f", series.PassiveGrowth(), expectedFinal-series.ActiveValue())
	}
}

func TestProjectIsNonDecreasing(t *testing.T) {
	processor := NewInvestmentProcessor(nil)

	tests := []struct {
		name   string
		params InvestmentParameters
	}{
		{"Zero return", InvestmentParameters{StartingCapital: 1000, MonthlyContribution: 100, AnnualReturnPercent: 0, ActiveYears: 10, CurrentAge: 40}},
		{"Typical", InvestmentParameters{StartingCapital: 0, MonthlyContribution: 500, AnnualReturnPercent: 5, ActiveYears: 25, CurrentAge: 30}},
		{"High return", InvestmentParameters{StartingCapital: 1000000, MonthlyContribution: 10000, AnnualReturnPercent: 20, ActiveYears: 1, CurrentAge: 0}},
		{"No contributions", InvestmentParameters{StartingCapital: 0, MonthlyContribution: 0, AnnualReturnPercent: 7, ActiveYears: 5, CurrentAge: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := processor.Project(tt.params, 0)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}
			for i := 1; i < len(series.Values); i++ {
				if series.Values[i] < series.Values[i-1] {
					t.Fatalf("series decreases at year %d: %.2f < %.2f", i+1, series.Values[i], series.Values[i-1])
				}
			}
		})
	}
}

func TestProjectWithTopUp(t *testing.T) {
	processor := NewInvestmentProcessor(nil)

	params := InvestmentParameters{
		StartingCapital:     10000,
		MonthlyContribution: 500,
		AnnualReturnPercent: 5,
		ActiveYears:         20,
		CurrentAge:          30,
	}

	base, err := processor.Project(params, 0)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	boosted, err := processor.Project(params, 250)
	if err != nil {
		t.Fatalf("Project() with top-up error = %v", err)
	}

	if boosted.MonthlyContribution != 750 {
		t.Errorf("MonthlyContribution = %.2f, expected 750", boosted.MonthlyContribution)
	}

	direct, err := processor.Project(InvestmentParameters{
		StartingCapital:     10000,
		MonthlyContribution: 750,
		AnnualReturnPercent: 5,
		ActiveYears:         20,
		CurrentAge:          30,
	}, 0)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	for i := range boosted.Values {
		if boosted.Values[i] != direct.Values[i] {
			t.Fatalf("year %d: top-up series %.2f differs from direct series %.2f", i+1, boosted.Values[i], direct.Values[i])
		}
		if boosted.Values[i] <= base.Values[i] {
			t.Fatalf("year %d: top-up series %.2f should exceed base %.2f", i+1, boosted.Values[i], base.Values[i])
		}
	}
}

func TestProjectZeroReturn(t *testing.T) {
	processor := NewInvestmentProcessor(nil)

	series, err := processor.Project(InvestmentParameters{
		StartingCapital:     1000,
		MonthlyContribution: 100,
		ActiveYears:         3,
		CurrentAge:          64,
	}, 0)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	expected := []float64{2200, 3400, 4600, 4600, 4600}
	if len(series.Values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(series.Values))
	}
	for i, want := range expected {
		if math.Abs(series.Values[i]-want) > 1e-9 {
			t.Errorf("year %d = %.2f, expected %.2f", i+1, series.Values[i], want)
		}
	}
}

func TestProjectWithoutActivePeriod(t *testing.T) {
	processor := NewInvestmentProcessor(nil)

	series, err := processor.Project(InvestmentParameters{
		StartingCapital:     1000,
		MonthlyContribution: 100,
		AnnualReturnPercent: 10,
		ActiveYears:         0,
		CurrentAge:          67,
	}, 0)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if series.ActiveValue() != 0 {
		t.Errorf("ActiveValue() = %.2f, expected 0 without an active period", series.ActiveValue())
	}
	if math.Abs(series.Final()-1210) > 1e-9 {
		t.Errorf("Final() = %.2f, expected 1210", series.Final())
	}
}

func TestProjectErrors(t *testing.T) {
	processor := NewInvestmentProcessor(nil)

	tests := []struct {
		name    string
		params  InvestmentParameters
		topUp   float64
		wantErr error
	}{
		{"Negative top-up", InvestmentParameters{ActiveYears: 10, CurrentAge: 30}, -1, ErrNegativeTopUp},
		{"Pension age exceeded", InvestmentParameters{ActiveYears: 40, CurrentAge: 40}, 0, ErrPensionAgeExceeded},
		{"Negative capital", InvestmentParameters{StartingCapital: -1, ActiveYears: 10, CurrentAge: 30}, 0, ErrInvalidInvestment},
		{"Negative contribution", InvestmentParameters{MonthlyContribution: -1, ActiveYears: 10, CurrentAge: 30}, 0, ErrInvalidInvestment},
		{"Total loss", InvestmentParameters{AnnualReturnPercent: -100, ActiveYears: 10, CurrentAge: 30}, 0, ErrInvalidInvestment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := processor.Project(tt.params, tt.topUp)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Project() error = %v, expected %v", err, tt.wantErr)
			}
			if len(series.Values) != 0 {
				t.Errorf("expected no partial results, got %d values", len(series.Values))
			}
		})
	}
}

func TestSeriesAlignTo(t *testing.T) {
	series := Series{Values: []float64{1, 2, 3}}

	tests := []struct {
		name     string
		years    int
		expected []float64
	}{
		{"Pad", 5, []float64{1, 2, 3, 3, 3}},
		{"Truncate", 2, []float64{1, 2}},
		{"Same length", 3, []float64{1, 2, 3}},
		{"Zero", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := series.AlignTo(tt.years)
			if len(got) != len(tt.expected) {
				t.Fatalf("AlignTo(%d) length = %d, expected %d", tt.years, len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("AlignTo(%d)[%d] = %v, expected %v", tt.years, i, got[i], tt.expected[i])
				}
			}
		})
	}

	got := series.AlignTo(5)
	got[0] = 99
	if series.Values[0] != 1 {
		t.Error("AlignTo() must not alias the series values")
	}
}
