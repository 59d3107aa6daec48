// Package amortization computes fixed-rate, fixed-term loan amortization
// schedules.
package amortization

import (
	"math"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// LoanInput holds the parameters of a loan. It is treated as immutable once a
// computation starts.
type LoanInput struct {
	Principal         float64   `json:"principal"`
	AnnualRatePercent float64   `json:"annualRatePercent"`
	TermYears         int       `json:"termYears"`
	StartDate         time.Time `json:"startDate"`
}

// PaymentRecord holds the values for a given payment. Monetary fields are
// rounded to whole currency units.
type PaymentRecord struct {
	SequenceNumber   int       `json:"paymentNo"`
	DueDate          time.Time `json:"paymentDate"`
	PaymentAmount    float64   `json:"payment"`
	PrincipalPortion float64   `json:"principal"`
	InterestPortion  float64   `json:"interest"`
	EndingBalance    float64   `json:"endingBalance"`
}

// Schedule is the full amortization table for a LoanInput along with its
// aggregates.
type Schedule struct {
	Input          LoanInput       `json:"input"`
	Payments       []PaymentRecord `json:"payments"`
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	TotalCost      float64         `json:"totalCost"`
	PaymentCount   int             `json:"paymentCount"`
}

// TermMonths returns the number of monthly periods in the loan.
func (in LoanInput) TermMonths() int {
	return in.TermYears * constants.MonthsPerYear
}

// MonthlyRate returns the periodic (monthly) interest rate as a fraction.
func (in LoanInput) MonthlyRate() float64 {
	return in.AnnualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Validate checks the input against the ranges the engine accepts.
func (in LoanInput) Validate() error {
	switch {
	case math.IsNaN(in.Principal) || math.IsInf(in.Principal, 0):
		return &InvalidInputError{Field: "principal", Value: in.Principal, Reason: "must be finite"}
	case in.Principal <= 0:
		return &InvalidInputError{Field: "principal", Value: in.Principal, Reason: "must be greater than zero"}
	case math.IsNaN(in.AnnualRatePercent) || math.IsInf(in.AnnualRatePercent, 0):
		return &InvalidInputError{Field: "annualRatePercent", Value: in.AnnualRatePercent, Reason: "must be finite"}
	case in.AnnualRatePercent < 0:
		return &InvalidInputError{Field: "annualRatePercent", Value: in.AnnualRatePercent, Reason: "must not be negative"}
	case in.TermYears <= 0:
		return &InvalidInputError{Field: "termYears", Value: float64(in.TermYears), Reason: "must be at least one year"}
	case in.TermYears > constants.MaxTermYears:
		return &InvalidInputError{Field: "termYears", Value: float64(in.TermYears), Reason: "exceeds the maximum supported term"}
	case in.StartDate.IsZero():
		return &InvalidInputError{Field: "startDate", Reason: "is required"}
	}
	return nil
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if annualRatePercent == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	// (1+r)^n - 1 computed without cancellation so very small rates still
	// produce a finite payment.
	growthLessOne := math.Expm1(float64(termMonths) * math.Log1p(periodicInterestRate))
	power := growthLessOne + 1
	return principal * periodicInterestRate * power / growthLessOne
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ComputeSchedule derives the constant monthly payment for the input and
// builds the payment-by-payment breakdown. The running balance is kept at full
// precision; only the emitted records are rounded, so rounding error does not
// compound across periods. No partial schedule is returned on error.
func ComputeSchedule(input LoanInput) (Schedule, error) {
	if err := input.Validate(); err != nil {
		return Schedule{}, err
	}

	n := input.TermMonths()
	monthlyPayment := CalculateMonthlyPayment(input.Principal, input.AnnualRatePercent, n)
	if !mathutil.IsFinite(monthlyPayment) {
		return Schedule{}, &ComputationOverflowError{Stage: "monthly payment"}
	}

	payments := make([]PaymentRecord, 0, n)
	balance := input.Principal
	totalInterest := 0.0
	displayPayment := mathutil.RoundUnit(monthlyPayment)

	for i := 1; i <= n; i++ {
		interest := CalculateInterestPayment(balance, input.AnnualRatePercent)
		principal := monthlyPayment - interest
		balance -= principal

		if !mathutil.IsFinite(interest) || !mathutil.IsFinite(balance) {
			return Schedule{}, &ComputationOverflowError{Stage: "balance", Period: i}
		}

		record := PaymentRecord{
			SequenceNumber:   i,
			DueDate:          datetime.AddMonths(input.StartDate, i),
			PaymentAmount:    displayPayment,
			PrincipalPortion: mathutil.RoundUnit(principal),
			InterestPortion:  mathutil.RoundUnit(interest),
			EndingBalance:    mathutil.RoundUnit(balance),
		}
		totalInterest += record.InterestPortion
		payments = append(payments, record)
	}

	totalCost := input.Principal + totalInterest
	if !mathutil.IsFinite(totalInterest) || !mathutil.IsFinite(totalCost) {
		return Schedule{}, &ComputationOverflowError{Stage: "totals"}
	}

	return Schedule{
		Input:          input,
		Payments:       payments,
		MonthlyPayment: monthlyPayment,
		TotalInterest:  totalInterest,
		TotalCost:      totalCost,
		PaymentCount:   len(payments),
	}, nil
}

// TermMonths returns the number of payments in the schedule.
func (s Schedule) TermMonths() int {
	return s.PaymentCount
}

// FirstDueDate returns the due date of the first payment, one month after the
// start date.
func (s Schedule) FirstDueDate() time.Time {
	if len(s.Payments) == 0 {
		return datetime.AddMonths(s.Input.StartDate, 1)
	}
	return s.Payments[0].DueDate
}

// MaturityDate returns the due date of the final payment.
func (s Schedule) MaturityDate() time.Time {
	if len(s.Payments) == 0 {
		return s.Input.StartDate
	}
	return s.Payments[len(s.Payments)-1].DueDate
}
