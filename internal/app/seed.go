package app

import (
	"github.com/shopspring/decimal"

	catalogservice "github.com/abgdnv/bookstore/internal/catalog/service"
)

// seedProducts is the fixed catalog loaded at process start, ids 1-5.
var seedProducts = []catalogservice.ProductCreateDto{
	{Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Category: "Fiction", Price: decimal.RequireFromString("25.99"), Stock: 15},
	{Title: "The Alchemist", Author: "Paulo Coelho", Category: "Fiction", Price: decimal.RequireFromString("18.50"), Stock: 20},
	{Title: "Sapiens", Author: "Yuval Noah Harari", Category: "Non-Fiction", Price: decimal.RequireFromString("22.00"), Stock: 12},
	{Title: "Educated", Author: "Tara Westover", Category: "Biography", Price: decimal.RequireFromString("19.99"), Stock: 8},
	{Title: "Becoming", Author: "Michelle Obama", Category: "Biography", Price: decimal.RequireFromString("24.99"), Stock: 10},
}

func preloadCatalog(catalog catalogservice.CatalogService) error {
	for _, p := range seedProducts {
		if _, err := catalog.Create(p); err != nil {
			return err
		}
	}
	return nil
}
