// Package output provides utilities for formatting and displaying amortization
// schedules and approval certificates.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-amortization/internal/certificate"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CsvHeader is the header row written by CsvFormat.
var CsvHeader = []string{"payment_no", "payment_date", "payment", "principal", "interest", "ending_balance"}

// Document is the JSON representation of a computed loan.
type Document struct {
	Certificate *certificate.Certificate `json:"certificate,omitempty"`
	Lines       []certificate.Line       `json:"lines,omitempty"`
	Schedule    amortization.Schedule    `json:"schedule"`
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
// The certificate summary is printed first when cert is non-nil.
func PrettyFormat(w io.Writer, schedule amortization.Schedule, cert *certificate.Certificate) error {
	p := message.NewPrinter(language.MustParse(constants.DefaultLocale))
	symbol := ""

	if cert != nil {
		symbol = cert.CurrencySymbol
		_, _ = p.Fprintf(w, "--- %s %s ---\n", cert.Labels.Get(certificate.LabelTitle), cert.ReferenceNumber)
		_, _ = p.Fprintf(w, "Date: %s\n", datetime.FormatDisplay(cert.LetterDate))
		if cert.BorrowerName != "" {
			_, _ = p.Fprintf(w, "Dear %s,\n", cert.BorrowerName)
		}
		if cert.LenderName != "" {
			_, _ = p.Fprintf(w, "Lender: %s\n", cert.LenderName)
		}
		for _, line := range cert.LabelledLines() {
			value := line.Value
			if line.Key == certificate.LabelApprovedAmount {
				value = fmt.Sprintf("%s (%s)", value, cert.ApprovedAmountWords)
			}
			_, _ = p.Fprintf(w, "%-24s | %s\n", line.Label, value)
		}
		_, _ = p.Fprintf(w, "\n")
	}

	money := func(amount float64) string {
		return format.Currency(symbol, amount)
	}

	_, _ = p.Fprintf(w, "--- Amortization schedule (%d payments) ---\n", schedule.PaymentCount)
	_, _ = p.Fprintf(w, "No.  | Date      | Payment | Principal | Interest | Balance\n")
	_, _ = p.Fprintf(w, "___  | _________ | _______ | _________ | ________ | _______\n")
	for _, payment := range schedule.Payments {
		_, err := p.Fprintf(w, "%-4d | %s | %s | %s | %s | %s\n",
			payment.SequenceNumber,
			datetime.FormatDisplay(payment.DueDate),
			money(payment.PaymentAmount),
			money(payment.PrincipalPortion),
			money(payment.InterestPortion),
			money(payment.EndingBalance),
		)
		if err != nil {
			return fmt.Errorf("failed to write payment %d: %w", payment.SequenceNumber, err)
		}
	}
	_, err := p.Fprintf(w, "Total interest: %s | Total cost: %s\n",
		money(schedule.TotalInterest), money(schedule.TotalCost))
	if err != nil || len(schedule.Payments) == 0 {
		return err
	}
	_, err = p.Fprintf(w, "Final payment due: %s\n", datetime.FormatDisplay(schedule.MaturityDate()))
	return err
}

// CsvFormat outputs the schedule in comma-separated value format.
func CsvFormat(w io.Writer, schedule amortization.Schedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, payment := range schedule.Payments {
		record := []string{
			strconv.Itoa(payment.SequenceNumber),
			payment.DueDate.Format(datetime.DateLayout),
			wholeUnits(payment.PaymentAmount),
			wholeUnits(payment.PrincipalPortion),
			wholeUnits(payment.InterestPortion),
			wholeUnits(payment.EndingBalance),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write payment %d: %w", payment.SequenceNumber, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CsvString returns the CsvFormat output as a string.
func CsvString(schedule amortization.Schedule) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, schedule); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat outputs the schedule, and the certificate when non-nil, as
// indented JSON.
func JSONFormat(w io.Writer, schedule amortization.Schedule, cert *certificate.Certificate) error {
	doc := Document{Certificate: cert, Schedule: schedule}
	if cert != nil {
		doc.Lines = cert.LabelledLines()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	return nil
}

func wholeUnits(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 0, 64)
}
