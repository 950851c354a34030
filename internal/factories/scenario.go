package factories

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var (
	serviceStyles = []string{
		string(models.ServiceStyleQuickService),
		string(models.ServiceStyleCasualDining),
		string(models.ServiceStyleFineDining),
	}
	kitchenComplexities = []string{
		string(models.KitchenComplexitySimple),
		string(models.KitchenComplexityModerate),
		string(models.KitchenComplexityComplex),
	}
	peakCandidates = []int{11, 12, 13, 14, 18, 19, 20, 21}
)

// ScenarioFactory generates plausible outlet scenarios for demos and
// load runs.
type ScenarioFactory struct {
	fake      faker.Faker
	nameCache sync.Map
}

// NewScenarioFactory returns a factory whose output is reproducible for
// a non-zero seed.
func NewScenarioFactory(seed int64) *ScenarioFactory {
	if seed == 0 {
		return &ScenarioFactory{fake: faker.New()}
	}
	return &ScenarioFactory{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

func (sf *ScenarioFactory) CreateScenarios(n int) []*models.Scenario {
	scenarios := make([]*models.Scenario, 0, n)
	for i := 0; i < n; i++ {
		scenarios = append(scenarios, sf.CreateScenario())
	}
	return scenarios
}

func (sf *ScenarioFactory) CreateScenario() *models.Scenario {
	fake := sf.fake
	brand := fake.Company().Name()
	outlet := fake.Address().City()

	averageDailyRevenue := fake.Float64(2, 2000, 15000)

	return &models.Scenario{
		ID:     cuid.New(),
		Name:   sf.uniqueName(brand + " " + outlet),
		Brand:  brand,
		Outlet: outlet,
		SpaceParameters: models.SpaceParameters{
			TotalArea:       fake.Float64(0, 120, 800),
			FOHPercentage:   fake.Float64(0, 55, 80),
			ExternalSeating: fake.IntBetween(0, 40),
		},
		ServiceParameters: models.ServiceParameters{
			ServiceStyle:      models.ServiceStyle(fake.RandomStringElement(serviceStyles)),
			KitchenComplexity: models.KitchenComplexity(fake.RandomStringElement(kitchenComplexities)),
		},
		OperationalParameters: models.OperationalParameters{
			AverageDailyRevenue: averageDailyRevenue,
			MonthlyLaborCost:    averageDailyRevenue * 30 * fake.Float64(2, 20, 35) / 100,
			BaseTraffic:         fake.Float64(0, 20, 80),
			DayFactors:          sf.dayFactors(),
			HourFactors:         sf.hourFactors(),
			PeakHours:           sf.peakHours(),
			BaseFOHStaff:        fake.IntBetween(3, 12),
			BaseBOHStaff:        fake.IntBetween(2, 8),
		},
	}
}

func (sf *ScenarioFactory) uniqueName(base string) string {
	name := base
	for counter := 2; ; counter++ {
		if _, exists := sf.nameCache.LoadOrStore(name, true); !exists {
			return name
		}
		name = fmt.Sprintf("%s %d", base, counter)
	}
}

func (sf *ScenarioFactory) dayFactors() map[string]float64 {
	factors := make(map[string]float64, len(models.Weekdays))
	for _, day := range models.Weekdays {
		factors[day] = sf.fake.Float64(2, 70, 150) / 100
	}
	return factors
}

// hourFactors covers opening hours only; other hours fall back to 1.0.
func (sf *ScenarioFactory) hourFactors() map[int]float64 {
	factors := make(map[int]float64, 13)
	for hour := 10; hour <= 22; hour++ {
		factors[hour] = sf.fake.Float64(2, 40, 200) / 100
	}
	return factors
}

func (sf *ScenarioFactory) peakHours() []int {
	var hours []int
	for _, h := range peakCandidates {
		if sf.fake.Boolean().Bool() {
			hours = append(hours, h)
		}
	}
	if len(hours) == 0 {
		hours = []int{12, 19}
	}
	return hours
}
