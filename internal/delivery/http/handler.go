// Package http exposes the storefront and admin JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/varmina/backend/internal/analytics"
	"github.com/varmina/backend/internal/cart"
	"github.com/varmina/backend/internal/catalog"
	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/order"
	"github.com/varmina/backend/internal/pricing"
	"github.com/varmina/backend/internal/repository"
)

// Handler handles HTTP requests for the application.
type Handler struct {
	catalog       *catalog.Catalog
	submitter     *order.Submitter
	txns          repository.TransactionRepository
	carts         repository.CartStore
	formatter     *pricing.Formatter
	whatsAppPhone string
}

func NewHandler(
	cat *catalog.Catalog,
	submitter *order.Submitter,
	txns repository.TransactionRepository,
	carts repository.CartStore,
	formatter *pricing.Formatter,
	whatsAppPhone string,
) *Handler {
	return &Handler{
		catalog:       cat,
		submitter:     submitter,
		txns:          txns,
		carts:         carts,
		formatter:     formatter,
		whatsAppPhone: whatsAppPhone,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.handleGetProducts)
	mux.HandleFunc("POST /api/products/{id}/click", h.handleClick)
	mux.HandleFunc("GET /api/assets", h.handleGetAssets)
	mux.HandleFunc("GET /api/transactions", h.handleGetTransactions)
	mux.HandleFunc("GET /api/analytics/summary", h.handleAnalyticsSummary)
	mux.HandleFunc("POST /api/orders", h.handleSubmitOrder)
	mux.HandleFunc("GET /api/cart/{session}", h.handleGetCart)
	mux.HandleFunc("PUT /api/cart/{session}", h.handleSaveCart)
	mux.HandleFunc("DELETE /api/cart/{session}", h.handleDeleteCart)
	mux.HandleFunc("GET /api/cart/{session}/quote", h.handleQuote)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	products := order.FilterProducts(h.catalog.Products(), r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if products == nil {
		products = []entity.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if _, ok := h.catalog.Product(productID); !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	if err := h.catalog.RegisterClick(r.Context(), productID); err != nil {
		// Fire-and-forget counter: report but never fail the page.
		slog.Error("Failed to register click", "product_id", productID, "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetAssets(w http.ResponseWriter, r *http.Request) {
	assets := order.FilterAssets(h.catalog.Assets(), r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if assets == nil {
		assets = []entity.InternalAsset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (h *Handler) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.txns.ListTransactions(r.Context())
	if err != nil {
		slog.Error("Failed to list transactions", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if txns == nil {
		txns = []entity.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (h *Handler) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	txns, err := h.txns.ListTransactions(r.Context())
	if err != nil {
		slog.Error("Failed to list transactions", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	products := h.catalog.Products()
	assets := h.catalog.Assets()

	writeJSON(w, http.StatusOK, map[string]any{
		"total_income":        analytics.TotalIncome(txns, from, to),
		"total_expense":       analytics.TotalExpense(txns, from, to),
		"balance":             analytics.Balance(txns, from, to),
		"inventory_valuation": analytics.InventoryValuation(products),
		"asset_cost":          analytics.AssetCost(assets),
		"estimated_margin":    analytics.EstimatedMargin(products, assets),
		"top_clicked":         analytics.TopClicked(products, 5),
		"low_stock_assets":    analytics.LowStockAssets(assets),
	})
}

func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return
		}
	}
	return
}

type orderLineRequest struct {
	ProductID   string `json:"product_id"`
	VariantName string `json:"variant_name"`
	Quantity    int    `json:"quantity"`
}

type assetLineRequest struct {
	AssetID  string `json:"asset_id"`
	Quantity int    `json:"quantity"`
}

type submitOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []orderLineRequest `json:"lines"`
	AssetLines    []assetLineRequest `json:"asset_lines"`
}

func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	composer := order.NewComposer()
	composer.CustomerName = req.CustomerName
	composer.PaymentMethod = req.PaymentMethod

	for _, line := range req.Lines {
		product, ok := h.catalog.Product(line.ProductID)
		if !ok {
			http.Error(w, "unknown product "+line.ProductID, http.StatusNotFound)
			return
		}
		var variant *entity.Variant
		if line.VariantName != "" {
			if variant = product.Variant(line.VariantName); variant == nil {
				http.Error(w, "unknown variant "+line.VariantName, http.StatusNotFound)
				return
			}
		}
		for i := 0; i < line.Quantity; i++ {
			if err := composer.AddProductLine(product, variant); err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
		}
	}

	for _, line := range req.AssetLines {
		asset, ok := h.catalog.Asset(line.AssetID)
		if !ok {
			http.Error(w, "unknown asset "+line.AssetID, http.StatusNotFound)
			return
		}
		for i := 0; i < line.Quantity; i++ {
			if err := composer.AddAssetLine(asset); err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
		}
	}

	txn, err := h.submitter.Submit(r.Context(), composer)
	switch {
	case errors.Is(err, entity.ErrEmptyOrder):
		http.Error(w, "order must have at least one product line", http.StatusBadRequest)
		return
	case errors.Is(err, entity.ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
		return
	case errors.Is(err, entity.ErrValidation):
		http.Error(w, "invalid ledger entry", http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.Error("Failed to submit order", "err", err)
		http.Error(w, "failed to submit order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.carts.Load(r.Context(), r.PathValue("session"))
	if err != nil {
		slog.Error("Failed to load cart", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	c := cart.FromLines(lines)
	writeJSON(w, http.StatusOK, map[string]any{
		"lines":       lines,
		"total_items": c.TotalItems(),
		"total_price": c.TotalPrice(),
	})
}

type saveCartRequest struct {
	Lines []orderLineRequest `json:"lines"`
}

func (h *Handler) handleSaveCart(w http.ResponseWriter, r *http.Request) {
	var req saveCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lines := make([]entity.CartLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			continue // zero is removal intent, nothing to store
		}
		product, ok := h.catalog.Product(line.ProductID)
		if !ok {
			http.Error(w, "unknown product "+line.ProductID, http.StatusNotFound)
			return
		}
		var variant *entity.Variant
		if line.VariantName != "" {
			if variant = product.Variant(line.VariantName); variant == nil {
				http.Error(w, "unknown variant "+line.VariantName, http.StatusNotFound)
				return
			}
		}
		lines = append(lines, entity.CartLine{Product: product, Variant: variant, Quantity: line.Quantity})
	}

	if err := h.carts.Save(r.Context(), r.PathValue("session"), lines); err != nil {
		slog.Error("Failed to save cart", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Delete(r.Context(), r.PathValue("session")); err != nil {
		slog.Error("Failed to delete cart", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	lines, err := h.carts.Load(r.Context(), r.PathValue("session"))
	if err != nil {
		slog.Error("Failed to load cart", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(lines) == 0 {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}

	c := cart.FromLines(lines)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": cart.QuoteMessage(c, h.formatter),
		"link":    cart.QuoteLink(h.whatsAppPhone, c, h.formatter),
	})
}

// EnableCORS is a middleware to allow the browser frontend to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
