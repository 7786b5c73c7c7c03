// Package report computes read-only aggregates over the sales ledger.
//
// All reports group the ledger's denormalized snapshots, never the live
// catalog, so deleted or edited products keep their historical figures.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/abgdnv/bookstore/internal/ledger/store"
)

// DefaultTopN is the ranking size used when the caller supplies n <= 0.
const DefaultTopN = 3

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID int
	Title     string
	Author    string
	Units     int
	Revenue   decimal.Decimal
}

// AuthorSales aggregates all sales of one author.
type AuthorSales struct {
	Author        string
	Units         int
	GrossRevenue  decimal.Decimal
	NetRevenue    decimal.Decimal
	TotalDiscount decimal.Decimal
}

// Summary is the ledger-wide financial rollup.
type Summary struct {
	TotalSales         int
	TotalUnits         int
	GrossRevenue       decimal.Decimal
	TotalDiscount      decimal.Decimal
	NetRevenue         decimal.Decimal
	AvgDiscountPerSale decimal.Decimal
}

// Service implements the reporting operations. It never mutates anything.
type Service struct {
	sales store.SaleStore
}

func NewService(sales store.SaleStore) *Service {
	return &Service{sales: sales}
}

// TopProducts groups sales by product ID, sums units and revenue, and
// returns the first n rows sorted descending by units sold. The sort is
// stable: ties keep the order of each product's first sale. Returns an
// empty slice when no sales exist.
func (s *Service) TopProducts(n int) []ProductSales {
	if n <= 0 {
		n = DefaultTopN
	}

	byProduct := make(map[int]*ProductSales)
	var order []int
	for _, sale := range s.sales.FindAll() {
		row, ok := byProduct[sale.ProductID]
		if !ok {
			row = &ProductSales{
				ProductID: sale.ProductID,
				Title:     sale.Title,
				Author:    sale.Author,
			}
			byProduct[sale.ProductID] = row
			order = append(order, sale.ProductID)
		}
		row.Units += sale.Quantity
		row.Revenue = row.Revenue.Add(sale.Total)
	}

	ranking := make([]ProductSales, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, *byProduct[id])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Units > ranking[j].Units
	})
	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// SalesByAuthor groups sales by the author snapshot and returns the rows
// sorted descending by net revenue.
func (s *Service) SalesByAuthor() []AuthorSales {
	byAuthor := make(map[string]*AuthorSales)
	var order []string
	for _, sale := range s.sales.FindAll() {
		row, ok := byAuthor[sale.Author]
		if !ok {
			row = &AuthorSales{Author: sale.Author}
			byAuthor[sale.Author] = row
			order = append(order, sale.Author)
		}
		row.Units += sale.Quantity
		row.GrossRevenue = row.GrossRevenue.Add(sale.Subtotal)
		row.NetRevenue = row.NetRevenue.Add(sale.Total)
		row.TotalDiscount = row.TotalDiscount.Add(sale.DiscountAmount)
	}

	report := make([]AuthorSales, 0, len(order))
	for _, author := range order {
		report = append(report, *byAuthor[author])
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].NetRevenue.GreaterThan(report[j].NetRevenue)
	})
	return report
}

// FinancialSummary sums units, gross and net revenue and discounts across
// the whole ledger. With no sales recorded every field is zero and no
// average is computed.
func (s *Service) FinancialSummary() Summary {
	sales := s.sales.FindAll()

	summary := Summary{TotalSales: len(sales)}
	for _, sale := range sales {
		summary.TotalUnits += sale.Quantity
		summary.GrossRevenue = summary.GrossRevenue.Add(sale.Subtotal)
		summary.TotalDiscount = summary.TotalDiscount.Add(sale.DiscountAmount)
		summary.NetRevenue = summary.NetRevenue.Add(sale.Total)
	}
	if summary.TotalSales > 0 {
		summary.AvgDiscountPerSale = summary.TotalDiscount.Div(decimal.NewFromInt(int64(summary.TotalSales))).Round(2)
	}
	return summary
}
