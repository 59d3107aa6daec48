package config

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/testutil"
	"go.uber.org/zap"
)

const personalLoanConfig = `
loan:
  principal: 100000
  annualRatePercent: 4
  termYears: 1
  startDate: "2025-01-01"
certificate:
  borrowerName: KoS
  referenceNumber: IDHADEL09559485
  processingFees: 1380
  labels:
    monthlyPayment: EMI
logging:
  level: debug
  format: console
output:
  format: csv
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Valid config file",
			configPath: testutil.WriteConfig(t, "config.yaml", personalLoanConfig),
			wantError:  false,
		},
		{
			name:       "Malformed config file",
			configPath: testutil.WriteConfig(t, "config.yaml", "loan: [principal"),
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationValues(t *testing.T) {
	config, err := LoadConfiguration(testutil.WriteConfig(t, "config.yaml", personalLoanConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Loan.Principal != 100000 {
		t.Errorf("expected principal 100000, got %v", config.Loan.Principal)
	}
	if config.Loan.AnnualRatePercent != 4 {
		t.Errorf("expected rate 4, got %v", config.Loan.AnnualRatePercent)
	}
	if config.Loan.TermYears != 1 {
		t.Errorf("expected term 1, got %d", config.Loan.TermYears)
	}
	if config.Loan.StartDate != "2025-01-01" {
		t.Errorf("expected start date 2025-01-01, got %q", config.Loan.StartDate)
	}
	if config.Certificate.BorrowerName != "KoS" {
		t.Errorf("expected borrower KoS, got %q", config.Certificate.BorrowerName)
	}
	if config.Certificate.ProcessingFees != 1380 {
		t.Errorf("expected processing fees 1380, got %v", config.Certificate.ProcessingFees)
	}
	if config.Certificate.CurrencySymbol != constants.DefaultCurrencySymbol {
		t.Errorf("expected default currency symbol, got %q", config.Certificate.CurrencySymbol)
	}
	if config.Certificate.CurrencyWord != constants.DefaultCurrencyWord {
		t.Errorf("expected default currency word, got %q", config.Certificate.CurrencyWord)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("expected output format csv, got %q", config.Output.Format)
	}

	// Map keys come back lower-cased from the loader.
	if got := config.Certificate.Labels["monthlypayment"]; got != "EMI" {
		t.Errorf("expected monthlyPayment label EMI, got %q", got)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	config, err := LoadConfigurationFromReader(strings.NewReader(personalLoanConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Loan.Principal != 100000 {
		t.Errorf("expected principal 100000, got %v", config.Loan.Principal)
	}

	minimal, err := LoadConfigurationFromReader(strings.NewReader("loan:\n  principal: 5000\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if minimal.Output.Format != constants.OutputFormatPretty {
		t.Errorf("expected default output format pretty, got %q", minimal.Output.Format)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("LOAN_LOAN_PRINCIPAL", "250000")
	t.Setenv("LOAN_CERTIFICATE_BORROWERNAME", "Override")

	config, err := LoadConfiguration(testutil.WriteConfig(t, "config.yaml", personalLoanConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Loan.Principal != 250000 {
		t.Errorf("expected principal 250000 from environment, got %v", config.Loan.Principal)
	}
	if config.Certificate.BorrowerName != "Override" {
		t.Errorf("expected borrower Override from environment, got %q", config.Certificate.BorrowerName)
	}
}

func TestLoanInput(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

	tests := []struct {
		name          string
		startDate     string
		expectedStart string
		wantError     bool
	}{
		{name: "Explicit start date", startDate: "2025-01-31", expectedStart: "2025-01-31"},
		{name: "Padded start date", startDate: " 2025-01-31 ", expectedStart: "2025-01-31"},
		{name: "Empty start date uses today", startDate: "", expectedStart: "2026-03-14"},
		{name: "Malformed start date", startDate: "31/01/2025", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{Loan: LoanConfig{
				Principal:         100000,
				AnnualRatePercent: 4,
				TermYears:         1,
				StartDate:         tt.startDate,
			}}

			input, err := config.LoanInputWithFixedTime(fixedTime)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoanInputWithFixedTime() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoanInputWithFixedTime() error = %v", err)
			}

			if got := input.StartDate.Format(DateLayout); got != tt.expectedStart {
				t.Errorf("expected start %s, got %s", tt.expectedStart, got)
			}
			if input.StartDate.Location() != time.UTC {
				t.Errorf("expected UTC start date, got %v", input.StartDate.Location())
			}
			if input.Principal != 100000 || input.AnnualRatePercent != 4 || input.TermYears != 1 {
				t.Errorf("unexpected loan input %+v", input)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name             string
		loan             LoanConfig
		fees             float64
		feePercent       float64
		expectedWarnings int
	}{
		{
			name:             "Ordinary loan",
			loan:             LoanConfig{Principal: 100000, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-01"},
			fees:             1380,
			expectedWarnings: 0,
		},
		{
			name:             "Month-end start",
			loan:             LoanConfig{Principal: 100000, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-31"},
			expectedWarnings: 1,
		},
		{
			name:             "High rate long term heavy fees",
			loan:             LoanConfig{Principal: 100000, AnnualRatePercent: 48, TermYears: 40, StartDate: "2025-01-01"},
			fees:             10000,
			expectedWarnings: 3,
		},
		{
			name:             "Heavy fee percent",
			loan:             LoanConfig{Principal: 100000, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-01"},
			feePercent:       8,
			expectedWarnings: 1,
		},
		{
			name:             "Modest fee percent",
			loan:             LoanConfig{Principal: 100000, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-01"},
			feePercent:       1.5,
			expectedWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{
				Loan:        tt.loan,
				Certificate: CertificateConfig{ProcessingFees: tt.fees, ProcessingFeePercent: tt.feePercent},
			}
			warnings := config.ValidateConfiguration()
			if len(warnings) != tt.expectedWarnings {
				t.Errorf("expected %d warnings, got %d: %v", tt.expectedWarnings, len(warnings), warnings)
			}
		})
	}
}

func TestProcessLoan(t *testing.T) {
	config, err := LoadConfigurationFromReader(strings.NewReader(personalLoanConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	result, err := config.ProcessLoan(zap.NewNop())
	if err != nil {
		t.Fatalf("ProcessLoan() error = %v", err)
	}

	if result.Schedule.Payments[0].PaymentAmount != 8515 {
		t.Errorf("expected monthly payment 8515, got %.0f", result.Schedule.Payments[0].PaymentAmount)
	}
	if result.Schedule.TotalInterest != 2180 {
		t.Errorf("expected total interest 2180, got %.0f", result.Schedule.TotalInterest)
	}
	if result.Certificate.ReferenceNumber != "IDHADEL09559485" {
		t.Errorf("expected configured reference, got %q", result.Certificate.ReferenceNumber)
	}
	if got := result.Certificate.FirstEMIDate.Format(datetime.DateLayout); got != "2025-02-01" {
		t.Errorf("expected first EMI date 2025-02-01, got %s", got)
	}
	if got := result.Certificate.Labels.Get("monthlyPayment"); got != "EMI" {
		t.Errorf("expected EMI label override, got %q", got)
	}
}

func TestProcessLoanErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Configuration
	}{
		{
			name:   "Invalid principal",
			config: Configuration{Loan: LoanConfig{Principal: 0, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-01"}},
		},
		{
			name:   "Invalid start date",
			config: Configuration{Loan: LoanConfig{Principal: 1000, AnnualRatePercent: 4, TermYears: 1, StartDate: "soon"}},
		},
		{
			name: "Fees above principal",
			config: Configuration{
				Loan:        LoanConfig{Principal: 1000, AnnualRatePercent: 4, TermYears: 1, StartDate: "2025-01-01"},
				Certificate: CertificateConfig{ProcessingFees: 5000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.config.ProcessLoan(nil); err == nil {
				t.Errorf("ProcessLoan() expected error but got none")
			}
		})
	}
}
