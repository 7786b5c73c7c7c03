// Package cli provides the interactive menu shell. It renders service
// results and maps error kinds to messages; it owns no business logic.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	catalogerrors "github.com/abgdnv/bookstore/internal/catalog/errors"
	catalogservice "github.com/abgdnv/bookstore/internal/catalog/service"
	ledgererrors "github.com/abgdnv/bookstore/internal/ledger/errors"
	ledgerservice "github.com/abgdnv/bookstore/internal/ledger/service"
	"github.com/abgdnv/bookstore/internal/report"
	"github.com/abgdnv/bookstore/internal/validation"
)

const mainMenu = `
===== Bookstore =====
1. List products
2. View product
3. Add product
4. Update product
5. Delete product
6. Record sale
7. List sales
8. Reports
0. Exit
`

const reportsMenu = `
----- Reports -----
1. Top products
2. Sales by author
3. Financial summary
0. Back
`

// Shell is the interactive terminal front end.
type Shell struct {
	catalog catalogservice.CatalogService
	ledger  ledgerservice.LedgerService
	reports *report.Service
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
	topN    int

	lines <-chan string
}

// NewShell creates a shell reading operator input from in and writing all
// tables and messages to out.
func NewShell(catalog catalogservice.CatalogService, ledger ledgerservice.LedgerService, reports *report.Service, in io.Reader, out io.Writer, logger *slog.Logger, topN int) *Shell {
	return &Shell{
		catalog: catalog,
		ledger:  ledger,
		reports: reports,
		in:      in,
		out:     out,
		logger:  logger.With("component", "cli"),
		topN:    topN,
	}
}

// Run executes the blocking read-eval-print loop until the operator exits,
// input reaches EOF, or ctx is cancelled (interrupt).
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	s.lines = lines

	for {
		fmt.Fprint(s.out, mainMenu)
		choice, ok := s.prompt(ctx, "Select an option: ")
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.listProducts()
		case "2":
			s.viewProduct(ctx)
		case "3":
			s.addProduct(ctx)
		case "4":
			s.updateProduct(ctx)
		case "5":
			s.deleteProduct(ctx)
		case "6":
			s.recordSale(ctx)
		case "7":
			s.listSales()
		case "8":
			if !s.runReportsMenu(ctx) {
				return nil
			}
		case "0":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
	}
}

func (s *Shell) listProducts() {
	products := s.catalog.FindAll()
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products in the catalog.")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tAuthor\tCategory\tPrice\tStock")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%s\t%d\n", p.ID, p.Title, p.Author, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	_ = w.Flush()
}

func (s *Shell) viewProduct(ctx context.Context) {
	id, ok := s.promptPositiveInt(ctx, "Product ID: ")
	if !ok {
		return
	}
	p, err := s.catalog.FindByID(id)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "\nProduct %d\n", p.ID)
	fmt.Fprintf(s.out, "  Title:    %s\n", p.Title)
	fmt.Fprintf(s.out, "  Author:   %s\n", p.Author)
	fmt.Fprintf(s.out, "  Category: %s\n", p.Category)
	fmt.Fprintf(s.out, "  Price:    $%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(s.out, "  Stock:    %d\n", p.Stock)
}

func (s *Shell) addProduct(ctx context.Context) {
	title, ok := s.promptNonEmpty(ctx, "Title: ")
	if !ok {
		return
	}
	author, ok := s.promptNonEmpty(ctx, "Author: ")
	if !ok {
		return
	}
	category, ok := s.promptNonEmpty(ctx, "Category: ")
	if !ok {
		return
	}
	price, ok := s.promptNonNegativeDecimal(ctx, "Price: $")
	if !ok {
		return
	}
	stock, ok := s.promptPositiveInt(ctx, "Initial stock: ")
	if !ok {
		return
	}

	created, err := s.catalog.Create(catalogservice.ProductCreateDto{
		Title:    title,
		Author:   author,
		Category: category,
		Price:    price,
		Stock:    stock,
	})
	if err != nil {
		s.printError(err)
		return
	}
	s.logger.Info("product created", "id", created.ID, "title", created.Title)
	fmt.Fprintf(s.out, "Product added with ID %d.\n", created.ID)
}

func (s *Shell) updateProduct(ctx context.Context) {
	id, ok := s.promptPositiveInt(ctx, "Product ID to update: ")
	if !ok {
		return
	}
	current, err := s.catalog.FindByID(id)
	if err != nil {
		s.printError(err)
		return
	}

	fmt.Fprintf(s.out, "Updating %q. Press Enter to keep the current value.\n", current.Title)
	var update catalogservice.ProductUpdateDto
	if update.Title, ok = s.promptOptionalNonEmpty(ctx, fmt.Sprintf("Title [%s]: ", current.Title)); !ok {
		return
	}
	if update.Author, ok = s.promptOptionalNonEmpty(ctx, fmt.Sprintf("Author [%s]: ", current.Author)); !ok {
		return
	}
	if update.Category, ok = s.promptOptionalNonEmpty(ctx, fmt.Sprintf("Category [%s]: ", current.Category)); !ok {
		return
	}
	if update.Price, ok = s.promptOptionalNonNegativeDecimal(ctx, fmt.Sprintf("Price [$%s]: ", current.Price.StringFixed(2))); !ok {
		return
	}
	if update.Stock, ok = s.promptOptionalPositiveInt(ctx, fmt.Sprintf("Stock [%d]: ", current.Stock)); !ok {
		return
	}

	updated, err := s.catalog.Update(id, update)
	if err != nil {
		s.printError(err)
		return
	}
	s.logger.Info("product updated", "id", updated.ID)
	fmt.Fprintln(s.out, "Product updated.")
}

func (s *Shell) deleteProduct(ctx context.Context) {
	id, ok := s.promptPositiveInt(ctx, "Product ID to delete: ")
	if !ok {
		return
	}
	p, err := s.catalog.FindByID(id)
	if err != nil {
		s.printError(err)
		return
	}
	confirm, ok := s.prompt(ctx, fmt.Sprintf("Delete %q? (y/N): ", p.Title))
	if !ok {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(confirm), "y") {
		fmt.Fprintln(s.out, "Deletion cancelled.")
		return
	}
	if err := s.catalog.DeleteByID(id); err != nil {
		s.printError(err)
		return
	}
	s.logger.Info("product deleted", "id", id)
	fmt.Fprintln(s.out, "Product deleted.")
}

func (s *Shell) recordSale(ctx context.Context) {
	customer, ok := s.promptNonEmpty(ctx, "Customer name: ")
	if !ok {
		return
	}
	productID, ok := s.promptPositiveInt(ctx, "Product ID: ")
	if !ok {
		return
	}
	quantity, ok := s.promptPositiveInt(ctx, "Quantity: ")
	if !ok {
		return
	}
	discount, ok := s.promptDiscount(ctx, "Discount % (press Enter for 0): ")
	if !ok {
		return
	}

	sale, err := s.ledger.RecordSale(ledgerservice.SaleCreateDto{
		Customer:    customer,
		ProductID:   productID,
		Quantity:    quantity,
		DiscountPct: discount,
	})
	if err != nil {
		s.printError(err)
		return
	}
	s.logger.Info("sale recorded", "id", sale.ID, "product_id", sale.ProductID, "total", sale.Total)

	fmt.Fprintln(s.out, "\n----- Sale receipt -----")
	fmt.Fprintf(s.out, "Customer:   %s\n", sale.Customer)
	fmt.Fprintf(s.out, "Product:    %s\n", sale.Title)
	fmt.Fprintf(s.out, "Quantity:   %d\n", sale.Quantity)
	fmt.Fprintf(s.out, "Unit price: $%s\n", sale.UnitPrice.StringFixed(2))
	fmt.Fprintf(s.out, "Subtotal:   $%s\n", sale.Subtotal.StringFixed(2))
	if sale.DiscountPct.IsPositive() {
		fmt.Fprintf(s.out, "Discount (%s%%): -$%s\n", sale.DiscountPct, sale.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(s.out, "Total:      $%s\n", sale.Total.StringFixed(2))
	fmt.Fprintf(s.out, "Date:       %s\n", sale.CreatedAt)
	fmt.Fprintf(s.out, "Sale recorded with ID %d.\n", sale.ID)
}

func (s *Shell) listSales() {
	sales := s.ledger.FindAll()
	if len(sales) == 0 {
		fmt.Fprintln(s.out, "No sales recorded yet.")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCustomer\tProduct\tQty\tSubtotal\tTotal\tDate")
	for _, sale := range sales {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t$%s\t$%s\t%s\n",
			sale.ID, sale.Customer, sale.Title, sale.Quantity,
			sale.Subtotal.StringFixed(2), sale.Total.StringFixed(2), sale.CreatedAt)
	}
	_ = w.Flush()
}

// runReportsMenu loops over the reports submenu. Returns false only when
// input ended and the whole shell should stop.
func (s *Shell) runReportsMenu(ctx context.Context) bool {
	for {
		fmt.Fprint(s.out, reportsMenu)
		choice, ok := s.prompt(ctx, "Select an option: ")
		if !ok {
			return false
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.printTopProducts()
		case "2":
			s.printSalesByAuthor()
		case "3":
			s.printFinancialSummary()
		case "0":
			return true
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
	}
}

func (s *Shell) printTopProducts() {
	ranking := s.reports.TopProducts(s.topN)
	if len(ranking) == 0 {
		fmt.Fprintln(s.out, "No sales data available.")
		return
	}
	fmt.Fprintf(s.out, "\nTop %d products by units sold\n", s.topN)
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Rank\tProduct\tUnits\tRevenue")
	for i, row := range ranking {
		fmt.Fprintf(w, "%d\t%s\t%d\t$%s\n", i+1, row.Title, row.Units, row.Revenue.StringFixed(2))
	}
	_ = w.Flush()
}

func (s *Shell) printSalesByAuthor() {
	rows := s.reports.SalesByAuthor()
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "No sales data available.")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Author\tUnits\tGross\tNet\tDiscount")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t$%s\t$%s\t$%s\n", row.Author, row.Units,
			row.GrossRevenue.StringFixed(2), row.NetRevenue.StringFixed(2), row.TotalDiscount.StringFixed(2))
	}
	_ = w.Flush()
}

func (s *Shell) printFinancialSummary() {
	summary := s.reports.FinancialSummary()
	fmt.Fprintln(s.out, "\n----- Financial summary -----")
	fmt.Fprintf(s.out, "Total units sold:         %d\n", summary.TotalUnits)
	fmt.Fprintf(s.out, "Gross revenue:            $%s\n", summary.GrossRevenue.StringFixed(2))
	fmt.Fprintf(s.out, "Total discounts:          $%s\n", summary.TotalDiscount.StringFixed(2))
	fmt.Fprintf(s.out, "Net revenue:              $%s\n", summary.NetRevenue.StringFixed(2))
	fmt.Fprintf(s.out, "Average discount per sale: $%s\n", summary.AvgDiscountPerSale.StringFixed(2))
}

// printError maps error kinds to one-line operator messages. All business
// errors are recoverable: control returns to the menu.
func (s *Shell) printError(err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		fmt.Fprintln(s.out, "Product not found.")
	case errors.Is(err, catalogerrors.ErrInsufficientStock):
		fmt.Fprintln(s.out, "Not enough stock for this sale.")
	case errors.Is(err, ledgererrors.ErrInvalidDiscount):
		fmt.Fprintln(s.out, "Discount must be between 0 and 100.")
	case errors.Is(err, validation.ErrInvalidInput):
		fmt.Fprintf(s.out, "Invalid input: %v\n", err)
	default:
		s.logger.Error("unexpected error", "error", err)
		fmt.Fprintln(s.out, "An unexpected error occurred.")
	}
}
