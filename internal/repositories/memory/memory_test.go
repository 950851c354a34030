package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProvider_SeedSettings(t *testing.T) {
	settings, err := planning.LoadSettings(context.Background(), NewProvider())
	require.NoError(t, err)
	assert.Equal(t, planning.DefaultSettings(), settings)
}

func TestProvider_GetConstant(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	v, err := p.GetConstant(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)

	_, err = p.GetConstant(ctx, models.ConstantCategoryCosts, "nope")
	assert.ErrorIs(t, err, planning.ErrConfigurationMissing)

	defaults, err := p.GetDefaults(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, defaults)
}

func TestProvider_SetAndCopy(t *testing.T) {
	p := NewEmptyProvider()
	ctx := context.Background()

	require.NoError(t, p.SetDefault(ctx, models.CategoryStaffing, "min_staff_per_shift", 3))
	require.NoError(t, p.SetConstant(ctx, models.ConstantCategoryTraffic, models.ConstantPeakTrafficThreshold, 50))

	defaults, err := p.GetDefaults(ctx, models.CategoryStaffing)
	require.NoError(t, err)
	defaults["min_staff_per_shift"] = 99

	again, err := p.GetDefaults(ctx, models.CategoryStaffing)
	require.NoError(t, err)
	assert.Equal(t, 3, again["min_staff_per_shift"])

	v, err := p.GetConstant(ctx, models.ConstantCategoryTraffic, models.ConstantPeakTrafficThreshold)
	require.NoError(t, err)
	assert.Equal(t, 50, v)
}

func TestProvider_LoadFile(t *testing.T) {
	path := writeFile(t, "defaults.yaml", `
defaults:
  staffing:
    max_staff_per_shift: 12
constants:
  traffic:
    peak_traffic_threshold: 80
`)
	p := NewProvider()
	require.NoError(t, p.LoadFile(path))

	settings, err := planning.LoadSettings(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 12, settings.Staffing.MaxStaffPerShift)
	assert.Equal(t, 2, settings.Staffing.MinStaffPerShift)

	v, err := p.GetConstant(context.Background(), models.ConstantCategoryTraffic, models.ConstantPeakTrafficThreshold)
	require.NoError(t, err)
	assert.EqualValues(t, 80, v)

	assert.Error(t, p.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestScenarioRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewScenarioRepository()
	fixed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	first := &models.Scenario{ID: "a", Name: "First"}
	second := &models.Scenario{Name: "Second"}
	require.NoError(t, repo.BulkCreate(ctx, []*models.Scenario{first, second}))
	assert.NotEmpty(t, second.ID)
	assert.Equal(t, fixed, first.CreatedAt)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Name)
	assert.Equal(t, "Second", all[1].Name)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	got.Name = "changed"
	again, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", again.Name)

	missing, err := repo.GetByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Create(ctx, &models.Scenario{ID: "a", Name: "Replaced"}))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReadScenariosFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name: "list",
			content: `
scenarios:
  - id: s1
    name: Flagship
    space_parameters: {total_area: 200, foh_percentage: 70, external_seating: 20}
    service_parameters: {service_style: casual_dining, kitchen_complexity: moderate}
    operational_parameters:
      peak_hours: [12, 13]
      hour_factors: {12: 1.5}
  - id: s2
    name: Kiosk
`,
			want: []string{"s1", "s2"},
		},
		{
			name:    "single json",
			content: `{"id": "solo", "name": "Solo", "service_parameters": {"service_style": "fine-dining"}}`,
			want:    []string{"solo"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios, err := ReadScenariosFile(writeFile(t, "scenarios.yaml", tt.content))
			require.NoError(t, err)

			ids := make([]string, 0, len(scenarios))
			for _, s := range scenarios {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	scenarios, err := ReadScenariosFile(writeFile(t, "one.yaml", tests[0].content))
	require.NoError(t, err)
	flagship := scenarios[0]
	assert.Equal(t, models.ServiceStyleCasualDining, flagship.ServiceParameters.ServiceStyle)
	assert.Equal(t, 1.5, flagship.OperationalParameters.HourFactor(12))
	assert.Equal(t, 20, flagship.SpaceParameters.ExternalSeating)

	_, err = ReadScenariosFile(writeFile(t, "bad.yaml", "name: Bad\nservice_parameters: {service_style: buffet}"))
	assert.Error(t, err)

	_, err = ReadScenariosFile(writeFile(t, "range.yaml", "name: Range\nspace_parameters: {foh_percentage: 150}"))
	assert.Error(t, err)

	_, err = ReadScenariosFile(writeFile(t, "unnamed.yaml", "space_parameters: {total_area: 100}"))
	assert.Error(t, err)
}
