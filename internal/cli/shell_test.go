package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogservice "github.com/abgdnv/bookstore/internal/catalog/service"
	catalogstore "github.com/abgdnv/bookstore/internal/catalog/store"
	ledgerservice "github.com/abgdnv/bookstore/internal/ledger/service"
	ledgerstore "github.com/abgdnv/bookstore/internal/ledger/store"
	"github.com/abgdnv/bookstore/internal/report"
	"github.com/shopspring/decimal"
)

// runSession drives a scripted operator session against real in-memory
// state and returns everything written to the terminal.
func runSession(t *testing.T, input string) string {
	t.Helper()

	products := catalogstore.NewMemoryStore()
	catalog := catalogservice.NewService(products)
	seed := []catalogservice.ProductCreateDto{
		{Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Category: "Fiction", Price: decimal.RequireFromString("25.99"), Stock: 15},
		{Title: "The Alchemist", Author: "Paulo Coelho", Category: "Fiction", Price: decimal.RequireFromString("18.50"), Stock: 20},
	}
	for _, p := range seed {
		_, err := catalog.Create(p)
		require.NoError(t, err)
	}

	sales := ledgerstore.NewMemoryStore()
	ledger := ledgerservice.NewService(sales, catalog).WithClock(func() time.Time {
		return time.Date(2024, 11, 5, 14, 30, 0, 0, time.UTC)
	})
	reports := report.NewService(sales)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shell := NewShell(catalog, ledger, reports, strings.NewReader(input), &out, logger, 3)

	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func Test_Shell_ListProducts(t *testing.T) {
	out := runSession(t, "1\n0\n")
	assert.Contains(t, out, "The Alchemist")
	assert.Contains(t, out, "$18.50")
	assert.Contains(t, out, "Goodbye.")
}

func Test_Shell_RecordSaleAndListSales(t *testing.T) {
	// option 6: customer Alice, product 1, quantity 3, empty discount
	out := runSession(t, "6\nAlice\n1\n3\n\n7\n0\n")
	assert.Contains(t, out, "Sale recorded with ID 1.")
	assert.Contains(t, out, "$77.97")
	assert.Contains(t, out, "2024-11-05 14:30:00")
}

func Test_Shell_RecordSale_InsufficientStock(t *testing.T) {
	out := runSession(t, "6\nAlice\n1\n999\n\n0\n")
	assert.Contains(t, out, "Not enough stock for this sale.")
}

func Test_Shell_RecordSale_InvalidDiscount(t *testing.T) {
	out := runSession(t, "6\nAlice\n1\n1\n150\n0\n")
	assert.Contains(t, out, "Discount must be between 0 and 100.")
}

func Test_Shell_ViewProduct_NotFound(t *testing.T) {
	out := runSession(t, "2\n42\n0\n")
	assert.Contains(t, out, "Product not found.")
}

func Test_Shell_InvalidInputReprompts(t *testing.T) {
	// a non-numeric product id re-prompts until valid
	out := runSession(t, "2\nabc\n1\n0\n")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "One Hundred Years of Solitude")
}

func Test_Shell_DeleteRequiresConfirmation(t *testing.T) {
	// declining the confirmation leaves the product in place
	out := runSession(t, "5\n1\nn\n1\n0\n")
	assert.Contains(t, out, "Deletion cancelled.")
	assert.Contains(t, out, "One Hundred Years of Solitude")
}

func Test_Shell_DeleteConfirmed(t *testing.T) {
	out := runSession(t, "5\n2\ny\n1\n0\n")
	assert.Contains(t, out, "Product deleted.")
	assert.NotContains(t, strings.Split(out, "Product deleted.")[1], "The Alchemist")
}

func Test_Shell_ReportsSubmenu(t *testing.T) {
	// record a sale, then run all three reports
	out := runSession(t, "6\nBob\n2\n5\n10\n8\n1\n2\n3\n0\n0\n")
	assert.Contains(t, out, "Top 3 products")
	assert.Contains(t, out, "Paulo Coelho")
	assert.Contains(t, out, "$83.25")
	assert.Contains(t, out, "Financial summary")
}

func Test_Shell_FinancialSummary_NoSales(t *testing.T) {
	out := runSession(t, "8\n3\n0\n0\n")
	assert.Contains(t, out, "Total units sold:         0")
	assert.Contains(t, out, "$0.00")
}

func Test_Shell_InvalidMenuOption(t *testing.T) {
	out := runSession(t, "99\n0\n")
	assert.Contains(t, out, "Invalid option.")
}

func Test_Shell_ExitsOnEOF(t *testing.T) {
	// input ends without an explicit exit
	out := runSession(t, "1\n")
	assert.Contains(t, out, "One Hundred Years of Solitude")
}

func Test_Shell_ExitsOnContextCancel(t *testing.T) {
	// given a shell whose input never completes
	shellDone := make(chan error, 1)
	pr, _ := io.Pipe()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := catalogstore.NewMemoryStore()
	catalog := catalogservice.NewService(products)
	sales := ledgerstore.NewMemoryStore()
	ledger := ledgerservice.NewService(sales, catalog)
	shell := NewShell(catalog, ledger, report.NewService(sales), pr, &out, logger, 3)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		shellDone <- shell.Run(ctx)
	}()

	// when the context is cancelled (interrupt)
	cancel()

	// then the loop exits promptly
	select {
	case err := <-shellDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not stop on context cancellation")
	}
}
