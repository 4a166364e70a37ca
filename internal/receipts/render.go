package receipts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/phpdave11/gofpdf"
)

// Receipt is the data printed on a payment receipt
type Receipt struct {
	PaymentID      string
	TransactionID  string
	RefundID       string
	Status         string
	MemberName     string
	MemberEmail    string
	MembershipName string
	AccessHours    string
	Method         string
	CardLast4      string
	Provider       string
	Price          int64
	Discount       int64
	Credit         int64
	Amount         int64
	Currency       string
	StartDate      time.Time
	EndDate        time.Time
	PaidAt         time.Time
}

// Key is the storage key of a payment's receipt
func Key(paymentID string) string {
	return fmt.Sprintf("%s.pdf", paymentID)
}

// Render draws the receipt as a single-page A4 PDF
func Render(r Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle("Signature Fitness Receipt "+r.PaymentID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(240, 232, 210)
	pdf.Text(25, 150, "SIGNATURE")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Signature Fitness Receipt")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Receipt: "+r.PaymentID)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Date: "+r.PaidAt.UTC().Format("2 Jan 2006 15:04 MST"))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Member: "+r.MemberName+" <"+r.MemberEmail+">")
	pdf.Ln(10)

	labelW, valueW := 60.0, 122.0
	row := func(label, value string, fill bool) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 8, label, "1", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(valueW, 8, value, "1", 1, "L", fill, 0, "")
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)

	row("Membership", r.MembershipName, true)
	if r.AccessHours != "" {
		row("Access", r.AccessHours, false)
	}
	if !r.StartDate.IsZero() {
		row("Period", r.StartDate.Format("2 Jan 2006")+" - "+r.EndDate.Format("2 Jan 2006"), true)
	}
	row("Payment method", methodLine(r), false)
	row("Status", r.Status, true)
	if r.TransactionID != "" {
		row("Transaction", r.TransactionID, false)
	}
	if r.RefundID != "" {
		row("Refund", r.RefundID, false)
	}
	pdf.Ln(6)

	amounts := []struct {
		label  string
		amount int64
		show   bool
	}{
		{"Price", r.Price, true},
		{"Referral discount", -r.Discount, r.Discount > 0},
		{"Upgrade credit", -r.Credit, r.Credit > 0},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, a := range amounts {
		if !a.show {
			continue
		}
		pdf.CellFormat(labelW+valueW-40, 8, a.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatMoney(a.amount, r.Currency), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW+valueW-40, 10, "Total paid", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 10, utils.FormatMoney(r.Amount, r.Currency), "T", 1, "R", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 5, "This is a simulated payment. No money has been charged.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func methodLine(r Receipt) string {
	switch {
	case r.CardLast4 != "":
		return "Card ending " + r.CardLast4
	case r.Provider != "":
		return "Mobile Money (" + r.Provider + ")"
	default:
		return r.Method
	}
}
