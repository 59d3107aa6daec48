// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// ValidateInterestRate warns about annual rates above the advisory threshold.
func ValidateInterestRate(ratePercent float64) string {
	if ratePercent > constants.HighInterestRatePercent {
		return fmt.Sprintf("Interest rate %s exceeds %s per annum",
			format.Percent(ratePercent), format.Percent(constants.HighInterestRatePercent))
	}
	return ""
}

// ValidateTerm warns about unusually long loan terms.
func ValidateTerm(termYears int) string {
	if termYears > constants.LongTermYears {
		return fmt.Sprintf("Loan term of %d years exceeds %d years", termYears, constants.LongTermYears)
	}
	return ""
}

// ValidateProcessingFees warns when fees are a large share of the principal.
func ValidateProcessingFees(principal, fees float64) string {
	if principal <= 0 || fees <= 0 {
		return ""
	}
	share := mathutil.CalculatePercentage(fees, principal)
	if share > constants.HighProcessingFeePercent {
		return fmt.Sprintf("Processing fees of %s are %s of the principal",
			format.GroupedNumber(fees), format.Percent(share))
	}
	return ""
}

// ValidateStartDate parses the start date and warns when it falls late enough
// in the month that some due dates roll into the following month.
func ValidateStartDate(startDate string) (string, error) {
	start, err := datetime.ParseDate(startDate)
	if err != nil {
		return "", err
	}

	if start.Day() > 28 {
		return fmt.Sprintf("Start date %s falls on day %d; due dates in shorter months roll into the next month",
			startDate, start.Day()), nil
	}

	return "", nil
}

// LoanValidator performs advisory validation of a loan and its certificate fees
type LoanValidator struct {
	Loan LoanConfig
}

// LoanConfig holds the raw loan values being validated
type LoanConfig struct {
	Principal      float64
	RatePercent    float64
	TermYears      int
	StartDate      string
	ProcessingFees float64
}

// ValidateAll validates the entire configuration and returns warnings
func (lv *LoanValidator) ValidateAll() []string {
	var warnings []string

	for _, warning := range []string{
		ValidateInterestRate(lv.Loan.RatePercent),
		ValidateTerm(lv.Loan.TermYears),
		ValidateProcessingFees(lv.Loan.Principal, lv.Loan.ProcessingFees),
	} {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if lv.Loan.StartDate != "" {
		warning, err := ValidateStartDate(lv.Loan.StartDate)
		if err == nil && warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}

// LoanWarnings returns the advisory warnings for a loan without a start date
// check.
func LoanWarnings(principal, ratePercent float64, termYears int, fees float64) []string {
	validator := &LoanValidator{Loan: LoanConfig{
		Principal:      principal,
		RatePercent:    ratePercent,
		TermYears:      termYears,
		ProcessingFees: fees,
	}}
	return validator.ValidateAll()
}
