package planning

import (
	"context"
	"testing"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPeakHourCalculator(t *testing.T, provider *fakeProvider) *PeakHourCalculator {
	t.Helper()
	calc, err := NewPeakHourCalculator(context.Background(), provider, nil)
	require.NoError(t, err)
	return calc
}

func TestAnalyzePeakHours_Heatmap(t *testing.T) {
	calc := newTestPeakHourCalculator(t, newFakeProvider())
	operational := models.OperationalParameters{
		BaseTraffic:  10,
		DayFactors:   map[string]float64{"Friday": 1.2},
		HourFactors:  map[int]float64{12: 2},
		PeakHours:    []int{12, 19},
		BaseFOHStaff: 4,
		BaseBOHStaff: 3,
	}

	result := calc.AnalyzePeakHours(operational, casualModerate())

	require.Len(t, result.HeatmapData, 7)
	for _, day := range models.Weekdays {
		require.Len(t, result.HeatmapData[day], 24, day)
	}

	friday := result.HeatmapData["Friday"]["12"]
	assert.InDelta(t, 36.0, friday.Traffic, 1e-9)
	assert.InDelta(t, 2.4, friday.Factor, 1e-9)
	assert.True(t, friday.IsPeak)

	monday := result.HeatmapData["Monday"]["3"]
	assert.InDelta(t, 7.0, monday.Traffic, 1e-9)
	assert.InDelta(t, 1.0, monday.Factor, 1e-9)
	assert.False(t, monday.IsPeak)

	assert.InDelta(t, 15.0, result.HeatmapData["Sunday"]["19"].Traffic, 1e-9)
	assert.Equal(t, []int{12, 19}, result.PeakHours)
}

func TestAnalyzePeakHours_Staffing(t *testing.T) {
	calc := newTestPeakHourCalculator(t, newFakeProvider())

	tests := []struct {
		name         string
		operational  models.OperationalParameters
		wantPeak     models.StaffLevels
		wantInsights []string
	}{
		{
			name:         "moderate uplift",
			operational:  models.OperationalParameters{BaseFOHStaff: 4, BaseBOHStaff: 3},
			wantPeak:     models.StaffLevels{FOH: 6, BOH: 4},
			wantInsights: []string{},
		},
		{
			name:        "single FOH doubles",
			operational: models.OperationalParameters{BaseFOHStaff: 1, BaseBOHStaff: 5},
			wantPeak:    models.StaffLevels{FOH: 2, BOH: 7},
			wantInsights: []string{
				"Significant FOH staff increase during peak hours (100.0%). Consider cross-training.",
			},
		},
		{
			name:         "no base staff",
			operational:  models.OperationalParameters{},
			wantPeak:     models.StaffLevels{FOH: 2, BOH: 2},
			wantInsights: []string{},
		},
		{
			name:        "extended peak",
			operational: models.OperationalParameters{BaseFOHStaff: 4, BaseBOHStaff: 3, PeakHours: []int{11, 12, 12, 13, 18, 19}},
			wantPeak:    models.StaffLevels{FOH: 6, BOH: 4},
			wantInsights: []string{
				"Extended peak hours (5 hours). Consider optimizing operational hours.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.AnalyzePeakHours(tt.operational, casualModerate())
			assert.Equal(t, tt.operational.BaseFOHStaff, result.StaffingRequirements.Base.FOH)
			assert.Equal(t, tt.wantPeak, result.StaffingRequirements.Peak)
			assert.Equal(t, tt.wantInsights, result.Insights)
		})
	}
}

func TestAnalyzePeakHours_EchoesPeakHours(t *testing.T) {
	calc := newTestPeakHourCalculator(t, newFakeProvider())
	hours := []int{19, 12, 12}

	result := calc.AnalyzePeakHours(models.OperationalParameters{PeakHours: hours}, casualModerate())
	assert.Equal(t, []int{19, 12, 12}, result.PeakHours)
	assert.True(t, result.HeatmapData["Monday"]["12"].IsPeak)

	result.PeakHours[0] = 7
	assert.Equal(t, 19, hours[0])

	empty := calc.AnalyzePeakHours(models.OperationalParameters{}, casualModerate())
	assert.NotNil(t, empty.PeakHours)
	assert.Empty(t, empty.PeakHours)
}

func TestAnalyzePeakHours_Opportunities(t *testing.T) {
	calc := newTestPeakHourCalculator(t, newFakeProvider())

	t.Run("quiet outlet", func(t *testing.T) {
		result := calc.AnalyzePeakHours(models.OperationalParameters{BaseTraffic: 20, BaseFOHStaff: 4, BaseBOHStaff: 3}, casualModerate())
		assert.Empty(t, result.OptimizationOpportunities)
	})

	t.Run("saturated and busy", func(t *testing.T) {
		operational := models.OperationalParameters{
			BaseTraffic:  100,
			PeakHours:    []int{12},
			BaseFOHStaff: 10,
			BaseBOHStaff: 8,
		}
		result := calc.AnalyzePeakHours(operational, casualModerate())
		assert.Equal(t, []string{
			"Peak staffing (24) at maximum limit. Consider operational optimization.",
			"High peak traffic detected. Consider implementing queue management system.",
		}, result.OptimizationOpportunities)
	})
}

func TestAnalyzePeakHours_MissingThreshold(t *testing.T) {
	provider := newFakeProvider().without(models.ConstantCategoryTraffic, models.ConstantPeakTrafficThreshold)

	_, err := NewPeakHourCalculator(context.Background(), provider, nil)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}
