package planning

import (
	"context"
	"time"

	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

const (
	CalculationStaffing     = "staffing"
	CalculationRevenue      = "revenue"
	CalculationProfitLoss   = "profit_loss"
	CalculationPeakHours    = "peak_hours"
	CalculationOptimization = "optimization"
	CalculationComparison   = "comparison"
	CalculationWhatIf       = "what_if"
	CalculationEvaluation   = "evaluation"
)

// Service is the entry point used by the CLI. Every call builds fresh
// calculators, so each calculation sees one configuration snapshot.
type Service struct {
	provider ConfigurationProvider
	store    ScenarioStore
	logger   *zap.Logger
	metrics  *metrics.Collector
	now      func() time.Time
}

type ServiceOption func(*Service)

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(provider ConfigurationProvider, store ScenarioStore, logger *zap.Logger, collector *metrics.Collector, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	s := &Service{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  collector,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Metrics() *metrics.Collector { return s.metrics }

func (s *Service) CalculateStaffing(ctx context.Context, space models.SpaceParameters, service models.ServiceParameters, operational models.OperationalParameters) (*models.StaffingResult, error) {
	return observe(s, CalculationStaffing, func() (*models.StaffingResult, error) {
		calc, err := NewStaffingCalculator(ctx, s.provider, s.logger)
		if err != nil {
			return nil, err
		}
		result := calc.CalculateStaffingRequirements(space, service, operational)
		return &result, nil
	}, func(r *models.StaffingResult) int { return len(r.Recommendations) })
}

func (s *Service) ProjectRevenue(ctx context.Context, operational models.OperationalParameters, period models.ProjectionPeriod, length int) (*models.RevenueResult, error) {
	return observe(s, CalculationRevenue, func() (*models.RevenueResult, error) {
		calc, err := NewFinancialCalculator(ctx, s.provider, s.logger, WithClock(s.now))
		if err != nil {
			return nil, err
		}
		result := calc.CalculateRevenueProjections(operational, period, length)
		return &result, nil
	}, func(r *models.RevenueResult) int { return len(r.Insights) + len(r.OptimizationOpportunities) })
}

func (s *Service) CalculateProfitLoss(ctx context.Context, revenue float64, operational models.OperationalParameters) (*models.PLResult, error) {
	return observe(s, CalculationProfitLoss, func() (*models.PLResult, error) {
		calc, err := NewFinancialCalculator(ctx, s.provider, s.logger, WithClock(s.now))
		if err != nil {
			return nil, err
		}
		result := calc.CalculateProfitLoss(revenue, operational)
		return &result, nil
	}, func(r *models.PLResult) int { return len(r.Insights) + len(r.OptimizationOpportunities) })
}

func (s *Service) AnalyzePeakHours(ctx context.Context, operational models.OperationalParameters, service models.ServiceParameters) (*models.PeakHourResult, error) {
	return observe(s, CalculationPeakHours, func() (*models.PeakHourResult, error) {
		calc, err := NewPeakHourCalculator(ctx, s.provider, s.logger)
		if err != nil {
			return nil, err
		}
		result := calc.AnalyzePeakHours(operational, service)
		return &result, nil
	}, func(r *models.PeakHourResult) int { return len(r.Insights) + len(r.OptimizationOpportunities) })
}

func (s *Service) OptimizeStaffing(ctx context.Context, scenarioID string, constraints *Constraints) (*models.OptimizationResult, error) {
	return observe(s, CalculationOptimization, func() (*models.OptimizationResult, error) {
		calc, err := NewOptimizationCalculator(ctx, s.provider, s.store, s.logger)
		if err != nil {
			return nil, err
		}
		return calc.OptimizeStaffing(ctx, scenarioID, constraints)
	}, func(r *models.OptimizationResult) int { return len(r.Insights) + len(r.OptimizationOpportunities) })
}

func (s *Service) CompareScenarios(ctx context.Context, ids []string) (*models.ComparisonResult, error) {
	return observe(s, CalculationComparison, func() (*models.ComparisonResult, error) {
		calc, err := NewScenarioComparator(ctx, s.provider, s.store, s.logger)
		if err != nil {
			return nil, err
		}
		return calc.CompareScenarios(ctx, ids)
	}, func(r *models.ComparisonResult) int { return len(r.Insights) + len(r.Recommendations) })
}

func (s *Service) WhatIf(ctx context.Context, baseID string, changes models.ScenarioChanges) (*models.WhatIfResult, error) {
	return observe(s, CalculationWhatIf, func() (*models.WhatIfResult, error) {
		calc, err := NewWhatIfAnalyzer(ctx, s.provider, s.store, s.logger)
		if err != nil {
			return nil, err
		}
		return calc.Analyze(ctx, baseID, changes)
	}, func(r *models.WhatIfResult) int { return len(r.Insights) })
}

// EvaluateScenario runs staffing and the labor based P&L for one scenario
// that need not be stored.
func (s *Service) EvaluateScenario(ctx context.Context, scenario models.Scenario) (*models.ScenarioEvaluation, error) {
	return observe(s, CalculationEvaluation, func() (*models.ScenarioEvaluation, error) {
		e, err := newEvaluator(ctx, s.provider, s.logger)
		if err != nil {
			return nil, err
		}
		result := e.evaluate(scenario)
		return &result, nil
	}, func(r *models.ScenarioEvaluation) int {
		return len(r.Staffing.Recommendations) + len(r.Financials.Insights) + len(r.Financials.OptimizationOpportunities)
	})
}

func observe[T any](s *Service, calculation string, run func() (T, error), insights func(T) int) (T, error) {
	start := time.Now()
	result, err := run()
	s.metrics.RecordCalculation(calculation, err, time.Since(start))
	if err != nil {
		s.logger.Warn("calculation failed", zap.String("calculation", calculation), zap.Error(err))
		return result, err
	}
	s.metrics.RecordInsights(calculation, insights(result))
	return result, nil
}
