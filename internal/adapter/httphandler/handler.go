package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

// GET v1/products (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)

type ProductsHandler struct {
	provider port.ProductsProvider
}

func RegisterProducts(mux *http.ServeMux, provider port.ProductsProvider) {
	h := ProductsHandler{provider}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.provider.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		log.Error("failed to list products", "err", err)
		return
	}

	vs := make([]Product, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, h.toProduct(p))
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	productID := r.PathValue("id")
	p, err := h.provider.FindProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to find product", http.StatusInternalServerError)
		log.Error("failed to find product", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toProduct(p))
}

func (h ProductsHandler) toProduct(p domain.Product) Product {
	return Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Images:      p.Images,
		Categories:  p.Categories,
		WeightKg:    p.WeightKg,
		Dimensions: ProductDimensions{
			Length: p.Dimensions.LengthCm,
			Width:  p.Dimensions.WidthCm,
			Height: p.Dimensions.HeightCm,
		},
		Options: p.Options,
	}
}

// POST v1/shipping/estimates JSON (200 OK, 400 Bad request)

type ShippingHandler struct {
	estimator port.ShippingEstimator
}

func RegisterShipping(mux *http.ServeMux, estimator port.ShippingEstimator) {
	h := ShippingHandler{estimator}
	mux.HandleFunc("POST /v1/shipping/estimates", h.PostEstimate)
}

func (h ShippingHandler) PostEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "ShippingHandler.PostEstimate"
	log := slog.With("op", op)

	var v EstimateRequest
	err := json.NewDecoder(r.Body).Decode(&v)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	quotes, err := h.estimator.EstimateShipping(r.Context(), h.toDomain(v))
	if err != nil {
		if domain.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to estimate", http.StatusInternalServerError)
		log.Error("failed to estimate", "err", err)
		return
	}

	vs := make([]ShippingQuote, 0, len(quotes))
	for _, q := range quotes {
		vs = append(vs, toQuote(q))
	}
	writeJSON(w, http.StatusOK, vs)

	log.Info("estimated", "destinationCEP", v.DestinationCEP)
}

func (h ShippingHandler) toDomain(v EstimateRequest) domain.EstimateRequest {
	return domain.EstimateRequest{
		OriginCEP:      v.OriginCEP,
		DestinationCEP: v.DestinationCEP,
		Parcel: domain.ParcelSpec{
			WeightKg: v.Parcel.WeightKg,
			LengthCm: v.Parcel.LengthCm,
			WidthCm:  v.Parcel.WidthCm,
			HeightCm: v.Parcel.HeightCm,
		},
	}
}

func toQuote(q domain.ShippingQuote) ShippingQuote {
	return ShippingQuote{
		ServiceCode:      q.ServiceCode,
		ServiceName:      q.ServiceName,
		Price:            q.Price,
		DeliveryDays:     q.DeliveryDays,
		HomeDelivery:     q.HomeDelivery,
		SaturdayDelivery: q.SaturdayDelivery,
	}
}

// POST v1/orders JSON (201 Created, 400, 404, 422)
// GET v1/orders/{reference} (200 OK, 404 Not found)

type OrdersHandler struct {
	placer   port.OrderPlacer
	provider port.OrderProvider
}

func RegisterOrders(
	mux *http.ServeMux, placer port.OrderPlacer, provider port.OrderProvider,
) {
	h := OrdersHandler{placer, provider}
	mux.HandleFunc("POST /v1/orders", h.PostOrder)
	mux.HandleFunc("GET /v1/orders/{reference}", h.GetOrder)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var v CheckoutRequest
	err := json.NewDecoder(r.Body).Decode(&v)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.placer.PlaceOrder(r.Context(), h.toDomain(v))
	if err != nil {
		var incomplete domain.IncompleteSelectionError
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.As(err, &incomplete):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "failed to place order", http.StatusInternalServerError)
			log.Error("failed to place order", "err", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPlacedOrder(order))

	log.Info("order placed", "paymentReference", order.PaymentReference)
}

func (h OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrder"
	log := slog.With("op", op)

	reference := r.PathValue("reference")
	order, err := h.provider.FindOrder(r.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to find order", http.StatusInternalServerError)
		log.Error("failed to find order", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlacedOrder(order))
}

func (h OrdersHandler) toDomain(v CheckoutRequest) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		ProductID: v.ProductID,
		Options:   v.Options,
		Quote: domain.ShippingQuote{
			ServiceCode:      v.Quote.ServiceCode,
			ServiceName:      v.Quote.ServiceName,
			Price:            v.Quote.Price,
			DeliveryDays:     v.Quote.DeliveryDays,
			HomeDelivery:     v.Quote.HomeDelivery,
			SaturdayDelivery: v.Quote.SaturdayDelivery,
		},
	}
}

func toPlacedOrder(order domain.PlacedOrder) PlacedOrder {
	return PlacedOrder{
		PaymentReference: order.PaymentReference,
		ProductID:        order.Summary.ProductID,
		ProductName:      order.Summary.ProductName,
		UnitPrice:        order.Summary.UnitPrice,
		Options:          order.Summary.Options,
		ShippingService:  order.Summary.ShippingService,
		ShippingPrice:    order.Summary.ShippingPrice,
		Total:            order.Summary.Total,
		PlacedAt:         order.PlacedAt.UTC().Format(time.RFC3339),
	}
}

// GET v1/shipping/estimates/stats?destination_prefix=NNN (200 OK, 204 No content)

type StatsHandler struct {
	stats port.EstimateStatsProvider
}

func RegisterStats(mux *http.ServeMux, stats port.EstimateStatsProvider) {
	h := StatsHandler{stats}
	mux.HandleFunc("GET /v1/shipping/estimates/stats", h.GetStats)
}

func (h StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "StatsHandler.GetStats"
	log := slog.With("op", op)

	prefix := r.URL.Query().Get("destination_prefix")
	if prefix == "" {
		http.Error(
			w, "destination_prefix is required", http.StatusBadRequest,
		)
		return
	}

	count, err := h.stats.EstimateCount(prefix)
	if err != nil {
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		log.Error("failed to get stats", "err", err)
		return
	}

	if count == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, EstimateStats{
		DestinationPrefix: prefix,
		Count:             count,
	})
}
