package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardRates() Rates {
	return Rates{Pay: 20, OvertimePay: 30, Bill: 35, OvertimeBill: 52.5}
}

func TestCalculateNoOvertime(t *testing.T) {
	result, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 6, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 38.0, result.TotalHours)
	assert.Equal(t, 38.0, result.RegularHours)
	assert.Equal(t, 0.0, result.OvertimeHours)
	assert.Equal(t, 760.0, result.Pay)
	assert.Equal(t, 1330.0, result.Bill)

	for i, day := range result.Days {
		assert.Equal(t, day.Hours, day.RegularHours, "day %d should be all regular", i+1)
		assert.Equal(t, 0.0, day.OvertimeHours, "day %d should have no overtime", i+1)
	}
}

func TestCalculateEvenOvertimeDistribution(t *testing.T) {
	// 45 hours over five 9-hour days: 5 overtime hours, one per day.
	result, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{9, 9, 9, 9, 9, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 45.0, result.TotalHours)
	assert.Equal(t, 40.0, result.RegularHours)
	assert.Equal(t, 5.0, result.OvertimeHours)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 1.0, result.Days[i].OvertimeHours, "day %d", i+1)
		assert.Equal(t, 8.0, result.Days[i].RegularHours, "day %d", i+1)
	}

	// 40*20 + 5*30
	assert.Equal(t, 950.0, result.Pay)
	// 40*35 + 5*52.5
	assert.Equal(t, 1662.5, result.Bill)
}

func TestCalculateRoundingResidualAbsorbedByLastWorkedDay(t *testing.T) {
	// 48 hours over six 8-hour days: 8 overtime hours, 8/48*8 = 1.333... per
	// day. Rounded shares of 1.33 leave a 0.02 residual for the last day.
	result, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 8, 8, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, result.OvertimeHours)

	sum := 0.0
	for _, day := range result.Days {
		sum += day.OvertimeHours
	}
	assert.InDelta(t, 8.0, sum, 1e-9, "per-day shares must sum to the weekly overtime")

	for i := 0; i < 5; i++ {
		assert.Equal(t, 1.33, result.Days[i].OvertimeHours, "day %d", i+1)
	}
	assert.Equal(t, 1.35, result.Days[5].OvertimeHours)
	assert.Equal(t, 0.0, result.Days[6].OvertimeHours)
}

func TestCalculateResidualRespectsTinyLastDay(t *testing.T) {
	// 48.01 hours leave 8.01 overtime. The six full days round to 1.33 each
	// and the 0.01-hour day rounds to 0.00, leaving a 0.03 residual that is
	// bigger than the last day's hours. The last day can only take 0.01; the
	// rest has to spill into a day with room.
	result, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 8, 8, 0.01},
		Threshold:  40,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.01, result.OvertimeHours)

	sum := 0.0
	for i, day := range result.Days {
		sum += day.OvertimeHours
		assert.GreaterOrEqual(t, day.RegularHours, 0.0, "day %d regular hours must not go negative", i+1)
		assert.LessOrEqual(t, day.OvertimeHours, day.Hours, "day %d overtime must not exceed its hours", i+1)
	}
	assert.InDelta(t, 8.01, sum, 1e-9, "per-day shares must sum to the weekly overtime")

	assert.Equal(t, 0.01, result.Days[6].OvertimeHours)
	assert.Equal(t, 0.0, result.Days[6].RegularHours)
	assert.Equal(t, 1.35, result.Days[5].OvertimeHours)
}

func TestRoundCentsClearsSummationNoise(t *testing.T) {
	sum := 0.0
	for i := 0; i < 10; i++ {
		sum += 1082.41
	}
	assert.Equal(t, 10824.1, RoundCents(sum))
}

func TestCalculateBonusAndDeductionAffectPayOnly(t *testing.T) {
	base, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 8, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	adjusted, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 8, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
		Bonus:      100,
		Deduction:  25,
	})
	require.NoError(t, err)

	assert.Equal(t, base.Pay+75, adjusted.Pay)
	assert.Equal(t, base.Bill, adjusted.Bill)
}

func TestCalculateZeroHours(t *testing.T) {
	result, err := Calculate(&WeekInput{
		Threshold: 40,
		Rates:     standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalHours)
	assert.Equal(t, 0.0, result.OvertimeHours)
	assert.Equal(t, 0.0, result.Pay)
	assert.Equal(t, 0.0, result.Bill)
}

func TestCalculateCustomThreshold(t *testing.T) {
	result, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{8, 8, 8, 8, 8, 0, 0},
		Threshold:  35,
		Rates:      standardRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, 35.0, result.RegularHours)
	assert.Equal(t, 5.0, result.OvertimeHours)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input WeekInput
		want  error
	}{
		{
			name:  "zero threshold",
			input: WeekInput{Rates: standardRates()},
			want:  ErrInvalidThreshold,
		},
		{
			name:  "threshold above a week",
			input: WeekInput{Threshold: 169, Rates: standardRates()},
			want:  ErrInvalidThreshold,
		},
		{
			name:  "negative rate",
			input: WeekInput{Threshold: 40, Rates: Rates{Pay: -1}},
			want:  ErrNegativeRate,
		},
		{
			name:  "negative bonus",
			input: WeekInput{Threshold: 40, Rates: standardRates(), Bonus: -1},
			want:  ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(&tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCalculateRejectsImpossibleDay(t *testing.T) {
	_, err := Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{25, 0, 0, 0, 0, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	assert.Error(t, err)

	_, err = Calculate(&WeekInput{
		DailyHours: [DaysPerWeek]float64{-1, 0, 0, 0, 0, 0, 0},
		Threshold:  40,
		Rates:      standardRates(),
	})
	assert.Error(t, err)
}
