// Package report aggregates persisted transactions into dashboard
// figures and exports the register as a spreadsheet.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

// MonthOverview is one bar of the revenue chart.
type MonthOverview struct {
	Year  int
	Month time.Month
	Total decimal.Decimal
}

// Summary is the dashboard aggregation for one owner's register.
// Revenue figures count invoices only; quotations are tallied separately
// and never contribute money.
type Summary struct {
	TotalRevenue   decimal.Decimal
	PaidRevenue    decimal.Decimal
	Outstanding    decimal.Decimal
	InvoiceCount   int
	QuotationCount int
	PaidCount      int
	UnpaidCount    int
	Months         []MonthOverview
}

// Build aggregates the transactions of one calendar year. Transactions
// outside the year still count toward the totals of their own month
// bucket only when year matches; pass the current year for the usual
// dashboard view.
func Build(transactions []billing.Transaction, year int) Summary {
	s := Summary{
		TotalRevenue: decimal.Zero,
		PaidRevenue:  decimal.Zero,
		Outstanding:  decimal.Zero,
	}
	byMonth := map[time.Month]decimal.Decimal{}

	for _, tx := range transactions {
		if tx.IsQuotation {
			s.QuotationCount++
			continue
		}
		s.InvoiceCount++
		s.TotalRevenue = s.TotalRevenue.Add(tx.GrandTotal)
		if tx.IsPaid {
			s.PaidCount++
			s.PaidRevenue = s.PaidRevenue.Add(tx.GrandTotal)
		} else {
			s.UnpaidCount++
			s.Outstanding = s.Outstanding.Add(tx.GrandTotal)
		}
		if tx.Date.Year() == year {
			m := tx.Date.Month()
			byMonth[m] = monthTotal(byMonth, m).Add(tx.GrandTotal)
		}
	}

	for m, total := range byMonth {
		s.Months = append(s.Months, MonthOverview{Year: year, Month: m, Total: total})
	}
	sort.Slice(s.Months, func(i, j int) bool { return s.Months[i].Month < s.Months[j].Month })
	return s
}

func monthTotal(byMonth map[time.Month]decimal.Decimal, m time.Month) decimal.Decimal {
	if t, ok := byMonth[m]; ok {
		return t
	}
	return decimal.Zero
}
