package model

import (
	"fmt"
	"sort"
)

// Observation pairs a sample value with its censoring flag so the two
// always travel through a sort together. Censored means the value is
// only an upper bound for the true observation.
type Observation struct {
	Value    float64 `json:"v"`
	Censored bool    `json:"c,omitempty"`
}

type ObservationList []Observation

func (l ObservationList) Len() int           { return len(l) }
func (l ObservationList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l ObservationList) Less(i, j int) bool { return l[i].Value < l[j].Value }

// Sorted returns a copy sorted by value; the receiver is never mutated.
func (l ObservationList) Sorted() ObservationList {
	res := make(ObservationList, len(l))
	copy(res, l)
	sort.Sort(res)
	return res
}

func (l ObservationList) Values() []float64 {
	res := make([]float64, len(l))
	for i, obs := range l {
		res[i] = obs.Value
	}
	return res
}

func (l ObservationList) CensoredCount() int {
	cnt := 0
	for _, obs := range l {
		if obs.Censored {
			cnt++
		}
	}
	return cnt
}

// NewObservationList zips values with their censoring indicators. The two
// slices must be index aligned; indicators may be nil for a fully
// uncensored sample.
func NewObservationList(values []float64, censored []bool) ObservationList {
	res := make(ObservationList, len(values))
	for i, v := range values {
		res[i].Value = v
		if censored != nil {
			res[i].Censored = censored[i]
		}
	}
	return res
}

// QuantileAnchor asserts that P(X <= Value) = Level on the true
// distribution. Level must lie strictly inside (0, 1).
type QuantileAnchor struct {
	Value float64 `json:"v"`
	Level float64 `json:"q"`
}

func (a QuantileAnchor) Valid() bool {
	return a.Level > 0 && a.Level < 1
}

func (a QuantileAnchor) String() string {
	return fmt.Sprintf("(Xq=%v, q=%v)", a.Value, a.Level)
}
