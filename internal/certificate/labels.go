package certificate

import "strings"

// Label keys used on the certificate.
const (
	LabelTitle          = "title"
	LabelApprovedAmount = "approvedAmount"
	LabelInterestRate   = "interestRate"
	LabelLoanTerm       = "loanTerm"
	LabelMonthlyPayment = "monthlyPayment"
	LabelFirstEMIDate   = "firstEmiDate"
	LabelTotalInterest  = "totalInterest"
	LabelProcessingFees = "processingFees"
	LabelTotalPayable   = "totalPayable"
	LabelNetDisbursal   = "netDisbursal"
)

var defaultLabels = map[string]string{
	LabelTitle:          "Certificate of Approved Loan No.",
	LabelApprovedAmount: "Approved Loan Amount",
	LabelInterestRate:   "Interest Rate",
	LabelLoanTerm:       "Loan Term",
	LabelMonthlyPayment: "Monthly Payment (EMI)",
	LabelFirstEMIDate:   "First EMI Date",
	LabelTotalInterest:  "Total Interest Payable",
	LabelProcessingFees: "Processing Fees",
	LabelTotalPayable:   "Total Amount Payable",
	LabelNetDisbursal:   "Net Disbursal",
}

// Labels maps label keys to display text. Keys are case-insensitive since
// configuration loaders lower-case map keys.
type Labels map[string]string

// NewLabels merges overrides on top of the default wording.
func NewLabels(overrides map[string]string) Labels {
	labels := make(Labels, len(defaultLabels))
	for key, value := range defaultLabels {
		labels[strings.ToLower(key)] = value
	}
	for key, value := range overrides {
		if value = strings.TrimSpace(value); value != "" {
			labels[strings.ToLower(key)] = value
		}
	}
	return labels
}

// Get returns the label text for key, or the key itself when unknown.
func (l Labels) Get(key string) string {
	if value, ok := l[strings.ToLower(key)]; ok {
		return value
	}
	return key
}
