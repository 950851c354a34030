package factories

import (
	"testing"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioFactory_CreateScenarios(t *testing.T) {
	scenarios := NewScenarioFactory(42).CreateScenarios(25)
	require.Len(t, scenarios, 25)

	names := map[string]bool{}
	for _, s := range scenarios {
		assert.NotEmpty(t, s.ID)
		assert.False(t, names[s.Name], "duplicate name %s", s.Name)
		names[s.Name] = true

		assert.GreaterOrEqual(t, s.SpaceParameters.TotalArea, 120.0)
		assert.LessOrEqual(t, s.SpaceParameters.TotalArea, 800.0)
		assert.GreaterOrEqual(t, s.SpaceParameters.FOHPercentage, 55.0)
		assert.LessOrEqual(t, s.SpaceParameters.FOHPercentage, 80.0)

		_, err := models.ParseServiceStyle(string(s.ServiceParameters.ServiceStyle))
		assert.NoError(t, err)
		_, err = models.ParseKitchenComplexity(string(s.ServiceParameters.KitchenComplexity))
		assert.NoError(t, err)

		op := s.OperationalParameters
		assert.NotEmpty(t, op.PeakHours)
		assert.Len(t, op.DayFactors, 7)
		assert.Less(t, op.MonthlyLaborCost, op.AverageDailyRevenue*30)
		assert.Equal(t, 1.0, op.HourFactor(3))
	}
}

func TestScenarioFactory_Seeded(t *testing.T) {
	a := NewScenarioFactory(7).CreateScenario()
	b := NewScenarioFactory(7).CreateScenario()

	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.SpaceParameters, b.SpaceParameters)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestScenarioFactory_UniqueName(t *testing.T) {
	sf := NewScenarioFactory(1)
	assert.Equal(t, "Acme Leeds", sf.uniqueName("Acme Leeds"))
	assert.Equal(t, "Acme Leeds 2", sf.uniqueName("Acme Leeds"))
	assert.Equal(t, "Acme Leeds 3", sf.uniqueName("Acme Leeds"))
}
