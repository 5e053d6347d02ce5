package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestPercentage(t *testing.T) {
	cases := []struct {
		name     string
		obtained *float64
		max      *float64
		want     *float64
	}{
		{name: "regular", obtained: ptr(45), max: ptr(50), want: ptr(90)},
		{name: "full marks", obtained: ptr(20), max: ptr(20), want: ptr(100)},
		{name: "zero obtained", obtained: ptr(0), max: ptr(40), want: ptr(0)},
		{name: "over max", obtained: ptr(30), max: ptr(20), want: ptr(150)},
		{name: "zero max", obtained: ptr(10), max: ptr(0), want: nil},
		{name: "nil max", obtained: ptr(10), max: nil, want: nil},
		{name: "nil obtained", obtained: nil, max: ptr(10), want: nil},
		{name: "both nil", obtained: nil, max: nil, want: nil},
		{name: "overflow", obtained: ptr(math.MaxFloat64), max: ptr(0.5), want: nil},
		{name: "infinite obtained", obtained: ptr(math.Inf(1)), max: ptr(50), want: nil},
		{name: "not a number", obtained: ptr(45), max: ptr(math.NaN()), want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentage(tc.obtained, tc.max)
			if tc.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tc.want, *got, 1e-9)
		})
	}
}

func TestApplyPercentageOverwritesSuppliedValue(t *testing.T) {
	marks := Marks{EvaluationID: 1, MarksObtained: ptr(45), MaxMarks: ptr(50), Percentage: ptr(12)}
	marks.ApplyPercentage()
	require.True(t, marks.HasPercentage())
	require.InDelta(t, 90.0, *marks.Percentage, 1e-9)

	marks.MaxMarks = ptr(0)
	marks.ApplyPercentage()
	require.False(t, marks.HasPercentage())
}
