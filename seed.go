package main

import "github.com/varmina/backend/internal/entity"

func intPtr(n int) *int { return &n }

// seedProducts returns the initial catalog inserted on first boot. Prices
// are in CLP.
func seedProducts() []entity.Product {
	return []entity.Product{
		{
			ID: "prod-001", Name: "Anillo Luna", Description: "Anillo ajustable con dije de luna.",
			Price: 12990, Stock: intPtr(8), Status: entity.StatusAvailable, Category: "Anillos",
			ImageURL: "https://images.varmina.cl/anillo-luna.jpg",
			Variants: []entity.Variant{
				{Name: "Plata", Price: 12990, Stock: 5, IsPrimary: true},
				{Name: "Oro laminado", Price: 15990, Stock: 3},
			},
		},
		{
			ID: "prod-002", Name: "Collar Sol", Description: "Collar con colgante de sol en baño de oro.",
			Price: 15990, Stock: intPtr(12), Status: entity.StatusAvailable, Category: "Collares",
			ImageURL: "https://images.varmina.cl/collar-sol.jpg",
		},
		{
			ID: "prod-003", Name: "Aros Gota", Description: "Aros colgantes en forma de gota.",
			Price: 9990, Stock: intPtr(20), Status: entity.StatusAvailable, Category: "Aros",
			ImageURL: "https://images.varmina.cl/aros-gota.jpg",
		},
		{
			ID: "prod-004", Name: "Pulsera Trenzada", Description: "Pulsera de hilo encerado con detalles de plata, hecha a pedido.",
			Price: 7990, Status: entity.StatusMadeToOrder, Category: "Pulseras",
			ImageURL: "https://images.varmina.cl/pulsera-trenzada.jpg",
		},
		{
			ID: "prod-005", Name: "Collar Perla Barroca", Description: "Collar de perla barroca natural, pieza única.",
			Price: 24990, Stock: intPtr(0), Status: entity.StatusSoldOut, Category: "Collares",
			ImageURL: "https://images.varmina.cl/collar-perla.jpg",
		},
	}
}
