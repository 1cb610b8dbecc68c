// Package finance provides the investment projection used by the scenario
// comparison.
package finance

// Series is a yearly investment value projection. Values[i] is the value at
// the end of year i+1.
type Series struct {
	Values              []float64
	ActiveYears         int
	PassiveYears        int
	MonthlyContribution float64
}

// Years returns the length of the projection.
func (s Series) Years() int {
	return len(s.Values)
}

// ActiveValue returns the value at the end of the active period.
func (s Series) ActiveValue() float64 {
	if s.ActiveYears <= 0 || s.ActiveYears > len(s.Values) {
		return 0
	}
	return s.Values[s.ActiveYears-1]
}

// Final returns the value at the end of the projection.
func (s Series) Final() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// PassiveGrowth returns the value gained during the passive period.
func (s Series) PassiveGrowth() float64 {
	return s.Final() - s.ActiveValue()
}

// AlignTo returns a copy of the values stretched or cut to the given number
// of years. Missing years repeat the final value.
func (s Series) AlignTo(years int) []float64 {
	if years <= 0 {
		return nil
	}
	aligned := make([]float64, years)
	n := copy(aligned, s.Values)
	last := s.Final()
	for i := n; i < years; i++ {
		aligned[i] = last
	}
	return aligned
}
