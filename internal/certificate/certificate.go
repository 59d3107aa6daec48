// Package certificate builds the data behind a loan approval certificate from
// a computed amortization schedule.
package certificate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Profile carries the cosmetic and fee settings that differ between lenders
// and letter variants.
type Profile struct {
	BorrowerName         string
	ReferenceNumber      string
	LenderName           string
	CurrencySymbol       string
	CurrencyWord         string
	ProcessingFees       float64
	ProcessingFeePercent float64
	Labels               map[string]string
}

// Certificate holds everything a renderer needs to produce the approval letter.
type Certificate struct {
	ReferenceNumber     string          `json:"referenceNumber"`
	BorrowerName        string          `json:"borrowerName"`
	LenderName          string          `json:"lenderName,omitempty"`
	LetterDate          time.Time       `json:"letterDate"`
	FirstEMIDate        time.Time       `json:"firstEmiDate"`
	ApprovedAmount      decimal.Decimal `json:"approvedAmount"`
	ApprovedAmountWords string          `json:"approvedAmountWords"`
	InterestRatePercent float64         `json:"interestRatePercent"`
	TermMonths          int             `json:"termMonths"`
	MonthlyPayment      decimal.Decimal `json:"monthlyPayment"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	ProcessingFees      decimal.Decimal `json:"processingFees"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	TotalPayable        decimal.Decimal `json:"totalPayable"`
	NetDisbursal        decimal.Decimal `json:"netDisbursal"`
	CurrencySymbol      string          `json:"currencySymbol"`
	Labels              Labels          `json:"labels"`
}

// Line is one labelled row of the certificate's loan summary.
type Line struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

var errEmptySchedule = errors.New("schedule has no payments")

// Build assembles a certificate for schedule using profile.
func Build(schedule amortization.Schedule, profile Profile) (*Certificate, error) {
	if len(schedule.Payments) == 0 {
		return nil, errEmptySchedule
	}

	approved := decimal.NewFromFloat(schedule.Input.Principal)
	whole := approved.BigInt()
	if !whole.IsUint64() {
		return nil, fmt.Errorf("approved amount %s is too large to express in words", approved)
	}

	fees, err := processingFees(approved, profile)
	if err != nil {
		return nil, err
	}

	reference := strings.TrimSpace(profile.ReferenceNumber)
	if reference == "" {
		reference = GenerateReference()
	}

	symbol := profile.CurrencySymbol
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	word := profile.CurrencyWord
	if word == "" {
		word = constants.DefaultCurrencyWord
	}

	totalInterest := decimal.NewFromFloat(schedule.TotalInterest)
	totalCost := approved.Add(totalInterest)

	return &Certificate{
		ReferenceNumber:     reference,
		BorrowerName:        profile.BorrowerName,
		LenderName:          profile.LenderName,
		LetterDate:          schedule.Input.StartDate,
		FirstEMIDate:        schedule.FirstDueDate(),
		ApprovedAmount:      approved,
		ApprovedAmountWords: format.NumberToWordsWithCurrency(whole.Uint64(), word),
		InterestRatePercent: schedule.Input.AnnualRatePercent,
		TermMonths:          schedule.TermMonths(),
		MonthlyPayment:      decimal.NewFromFloat(schedule.Payments[0].PaymentAmount),
		TotalInterest:       totalInterest,
		ProcessingFees:      fees,
		TotalCost:           totalCost,
		TotalPayable:        totalCost.Add(fees),
		NetDisbursal:        approved.Sub(fees),
		CurrencySymbol:      symbol,
		Labels:              NewLabels(profile.Labels),
	}, nil
}

// ResolveProcessingFees returns the processing fee profile charges on a loan
// of principal.
func ResolveProcessingFees(principal float64, profile Profile) (decimal.Decimal, error) {
	if !mathutil.IsFinite(principal) {
		return decimal.Zero, fmt.Errorf("approved amount must be finite")
	}
	return processingFees(decimal.NewFromFloat(principal), profile)
}

// processingFees resolves the fee from either a fixed amount or a percentage
// of the approved amount, rounded to a whole unit.
func processingFees(approved decimal.Decimal, profile Profile) (decimal.Decimal, error) {
	if profile.ProcessingFees < 0 || profile.ProcessingFeePercent < 0 {
		return decimal.Zero, fmt.Errorf("processing fees must not be negative")
	}
	if profile.ProcessingFees > 0 && profile.ProcessingFeePercent > 0 {
		return decimal.Zero, fmt.Errorf("set either processing fees or processing fee percent, not both")
	}

	fees := decimal.NewFromFloat(profile.ProcessingFees)
	if profile.ProcessingFeePercent > 0 {
		fees = approved.Mul(decimal.NewFromFloat(profile.ProcessingFeePercent)).
			Div(decimal.NewFromInt(100)).
			Round(0)
	}

	if fees.GreaterThan(approved) {
		return decimal.Zero, fmt.Errorf("processing fees %s exceed the approved amount %s", fees, approved)
	}
	return fees, nil
}

// GenerateReference returns a new certificate reference number: the
// reference prefix followed by 13 upper-case hexadecimal characters.
func GenerateReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return constants.ReferencePrefix + strings.ToUpper(id[:13])
}

// Lines returns the loan summary rows in the order they appear on the letter.
func (c *Certificate) Lines() []Line {
	money := func(d decimal.Decimal) string {
		return format.Currency(c.CurrencySymbol, d.InexactFloat64())
	}

	return []Line{
		{Key: LabelApprovedAmount, Value: money(c.ApprovedAmount)},
		{Key: LabelInterestRate, Value: format.Percent(c.InterestRatePercent)},
		{Key: LabelLoanTerm, Value: fmt.Sprintf("%d Months", c.TermMonths)},
		{Key: LabelMonthlyPayment, Value: money(c.MonthlyPayment)},
		{Key: LabelFirstEMIDate, Value: datetime.FormatDisplay(c.FirstEMIDate)},
		{Key: LabelTotalInterest, Value: money(c.TotalInterest)},
		{Key: LabelProcessingFees, Value: money(c.ProcessingFees)},
		{Key: LabelTotalPayable, Value: money(c.TotalPayable)},
		{Key: LabelNetDisbursal, Value: money(c.NetDisbursal)},
	}
}

// LabelledLines is Lines with each row's label resolved.
func (c *Certificate) LabelledLines() []Line {
	lines := c.Lines()
	for i := range lines {
		lines[i].Label = c.Labels.Get(lines[i].Key)
	}
	return lines
}
