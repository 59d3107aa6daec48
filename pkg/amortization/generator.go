package amortization

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"go.uber.org/zap"
)

// ScheduleGenerator wraps ComputeSchedule with logging for callers that run
// it as part of a larger flow.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates a complete amortization schedule for a loan
func (g *ScheduleGenerator) Generate(input LoanInput) (Schedule, error) {
	g.logger.Debug(fmt.Sprintf("computing schedule for %.2f at %.2f%% over %d years starting %s",
		input.Principal, input.AnnualRatePercent, input.TermYears, input.StartDate.Format(datetime.DateLayout)),
		zap.String("op", "amortization.Generate"),
	)

	schedule, err := ComputeSchedule(input)
	if err != nil {
		var invalid *InvalidInputError
		if errors.As(err, &invalid) {
			g.logger.Debug("rejected loan input",
				zap.String("op", "amortization.Generate"),
				zap.String("field", invalid.Field),
				zap.String("reason", invalid.Reason),
			)
		}
		return Schedule{}, err
	}

	g.logger.Debug("schedule computed",
		zap.String("op", "amortization.Generate"),
		zap.Int("payments", schedule.PaymentCount),
		zap.Float64("monthly_payment", schedule.MonthlyPayment),
		zap.Float64("total_interest", schedule.TotalInterest),
	)

	if len(schedule.Payments) > 0 {
		last := schedule.Payments[len(schedule.Payments)-1]
		switch {
		case !mathutil.WithinTolerance(last.EndingBalance, 0, constants.RoundingTolerance):
			g.logger.Warn(fmt.Sprintf("final balance %.0f exceeds the rounding tolerance", last.EndingBalance),
				zap.String("op", "amortization.Generate"),
			)
		case last.EndingBalance != 0:
			g.logger.Debug(fmt.Sprintf("final balance carries a rounding residual of %.0f", last.EndingBalance),
				zap.String("op", "amortization.Generate"),
			)
		}
	}

	return schedule, nil
}
