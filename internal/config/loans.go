package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/internal/certificate"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"go.uber.org/zap"
)

// LoanConfig holds the loan form values.
type LoanConfig struct {
	Principal         float64 `yaml:"principal" json:"principal" mapstructure:"principal"`
	AnnualRatePercent float64 `yaml:"annualRatePercent" json:"annualRatePercent" mapstructure:"annualRatePercent"`
	TermYears         int     `yaml:"termYears" json:"termYears" mapstructure:"termYears"`
	StartDate         string  `yaml:"startDate,omitempty" json:"startDate,omitempty" mapstructure:"startDate"` // YYYY-MM-DD, defaults to today
}

// CertificateConfig holds the approval certificate settings.
type CertificateConfig struct {
	BorrowerName         string            `yaml:"borrowerName" json:"borrowerName" mapstructure:"borrowerName"`
	ReferenceNumber      string            `yaml:"referenceNumber,omitempty" json:"referenceNumber,omitempty" mapstructure:"referenceNumber"`
	LenderName           string            `yaml:"lenderName,omitempty" json:"lenderName,omitempty" mapstructure:"lenderName"`
	CurrencySymbol       string            `yaml:"currencySymbol,omitempty" json:"currencySymbol,omitempty" mapstructure:"currencySymbol"`
	CurrencyWord         string            `yaml:"currencyWord,omitempty" json:"currencyWord,omitempty" mapstructure:"currencyWord"`
	ProcessingFees       float64           `yaml:"processingFees,omitempty" json:"processingFees,omitempty" mapstructure:"processingFees"`
	ProcessingFeePercent float64           `yaml:"processingFeePercent,omitempty" json:"processingFeePercent,omitempty" mapstructure:"processingFeePercent"`
	Labels               map[string]string `yaml:"labels,omitempty" json:"labels,omitempty" mapstructure:"labels"`
}

// LoanInputWithFixedTime converts the loan settings into engine input using
// fixedTime in place of today for an empty start date.
func (conf *Configuration) LoanInputWithFixedTime(fixedTime time.Time) (amortization.LoanInput, error) {
	var start time.Time
	if strings.TrimSpace(conf.Loan.StartDate) == "" {
		start = datetime.MustParseTime(DateLayout, fixedTime.Format(DateLayout))
	} else {
		var err error
		start, err = datetime.ParseDate(conf.Loan.StartDate)
		if err != nil {
			return amortization.LoanInput{}, fmt.Errorf("invalid loan start date %q: %w", conf.Loan.StartDate, err)
		}
	}

	return amortization.LoanInput{
		Principal:         conf.Loan.Principal,
		AnnualRatePercent: conf.Loan.AnnualRatePercent,
		TermYears:         conf.Loan.TermYears,
		StartDate:         start,
	}, nil
}

// CertificateProfile returns the certificate settings as a builder profile.
func (conf *Configuration) CertificateProfile() certificate.Profile {
	c := conf.Certificate
	return certificate.Profile{
		BorrowerName:         c.BorrowerName,
		ReferenceNumber:      c.ReferenceNumber,
		LenderName:           c.LenderName,
		CurrencySymbol:       c.CurrencySymbol,
		CurrencyWord:         c.CurrencyWord,
		ProcessingFees:       c.ProcessingFees,
		ProcessingFeePercent: c.ProcessingFeePercent,
		Labels:               c.Labels,
	}
}

// ValidateConfiguration performs advisory validation of the configuration and
// returns warnings. Fees given as a percentage are checked at their resolved
// amount.
func (conf *Configuration) ValidateConfiguration() []string {
	fees := conf.Certificate.ProcessingFees
	if resolved, err := certificate.ResolveProcessingFees(conf.Loan.Principal, conf.CertificateProfile()); err == nil {
		fees = resolved.InexactFloat64()
	}

	validator := &validation.LoanValidator{
		Loan: validation.LoanConfig{
			Principal:      conf.Loan.Principal,
			RatePercent:    conf.Loan.AnnualRatePercent,
			TermYears:      conf.Loan.TermYears,
			StartDate:      conf.Loan.StartDate,
			ProcessingFees: fees,
		},
	}
	return validator.ValidateAll()
}

// Result bundles a computed schedule with its certificate.
type Result struct {
	Schedule    amortization.Schedule
	Certificate *certificate.Certificate
}

// ProcessLoan computes the amortization schedule and certificate for the
// configured loan.
func (conf *Configuration) ProcessLoan(logger *zap.Logger) (*Result, error) {
	return conf.ProcessLoanWithFixedTime(logger, time.Now())
}

// ProcessLoanWithFixedTime is ProcessLoan with an injectable notion of today.
func (conf *Configuration) ProcessLoanWithFixedTime(logger *zap.Logger, fixedTime time.Time) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	input, err := conf.LoanInputWithFixedTime(fixedTime)
	if err != nil {
		return nil, err
	}

	generator := amortization.NewScheduleGenerator(logger)
	schedule, err := generator.Generate(input)
	if err != nil {
		return nil, err
	}

	cert, err := certificate.Build(schedule, conf.CertificateProfile())
	if err != nil {
		return nil, fmt.Errorf("failed to build certificate: %w", err)
	}

	logger.Debug(fmt.Sprintf("certificate %s prepared for %s", cert.ReferenceNumber, cert.BorrowerName),
		zap.String("op", "config.ProcessLoan"),
	)

	return &Result{Schedule: schedule, Certificate: cert}, nil
}
