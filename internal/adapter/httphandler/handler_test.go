package httphandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductsProvider struct {
	mock.Mock
}

func (m *MockProductsProvider) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsProvider) FindProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

type MockShippingEstimator struct {
	mock.Mock
}

func (m *MockShippingEstimator) EstimateShipping(
	ctx context.Context, v domain.EstimateRequest,
) ([]domain.ShippingQuote, error) {
	args := m.Called(ctx, v)
	return args.Get(0).([]domain.ShippingQuote), args.Error(1)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) PlaceOrder(
	ctx context.Context, v domain.CheckoutRequest,
) (domain.PlacedOrder, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(domain.PlacedOrder), args.Error(1)
}

func (m *MockOrders) FindOrder(
	ctx context.Context, reference string,
) (domain.PlacedOrder, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(domain.PlacedOrder), args.Error(1)
}

type MockStats struct {
	mock.Mock
}

func (m *MockStats) EstimateCount(prefix string) (int64, error) {
	args := m.Called(prefix)
	return args.Get(0).(int64), args.Error(1)
}

func testProduct() domain.Product {
	return domain.Product{
		ProductID:   "luminaria-acdc",
		Name:        "Luminária ACDC",
		Price:       149.9,
		Description: "Luminária decorativa",
		Images:      []string{"acdc.jpg"},
		Categories:  []string{"luminarias"},
		WeightKg:    0.8,
		Dimensions:  domain.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10},
	}
}

func TestProductsHandler(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		provider := &MockProductsProvider{}
		provider.On("ListProducts", mock.Anything).Return(
			[]domain.Product{testProduct()}, nil,
		)

		mux := http.NewServeMux()
		RegisterProducts(mux, provider)

		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got []Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "luminaria-acdc", got[0].ProductID)
		assert.InEpsilon(t, 149.9, got[0].Price, 1e-9)
	})

	t.Run("DetailNotFound", func(t *testing.T) {
		provider := &MockProductsProvider{}
		provider.On("FindProduct", mock.Anything, "nonexistent-id").Return(
			domain.Product{}, domain.ErrProductNotFound,
		)

		mux := http.NewServeMux()
		RegisterProducts(mux, provider)

		req := httptest.NewRequest(
			http.MethodGet, "/v1/products/nonexistent-id", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShippingHandler(t *testing.T) {
	const estimateBody = `{
		"origin_cep": "01310-100",
		"destination_cep": "20040-020",
		"parcel": {
			"weight_kg": 0.8, "length_cm": 30, "width_cm": 20, "height_cm": 10
		}
	}`

	t.Run("Quotes", func(t *testing.T) {
		estimator := &MockShippingEstimator{}
		estimator.On("EstimateShipping", mock.Anything, mock.Anything).Return(
			[]domain.ShippingQuote{
				{ServiceCode: "04510", ServiceName: "PAC", Price: 23.74, DeliveryDays: 4, HomeDelivery: true},
				{ServiceCode: "04014", ServiceName: "SEDEX", Price: 38.78, DeliveryDays: 1, HomeDelivery: true, SaturdayDelivery: true},
			}, nil,
		)

		mux := http.NewServeMux()
		RegisterShipping(mux, estimator)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/shipping/estimates",
			strings.NewReader(estimateBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []ShippingQuote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "PAC", got[0].ServiceName)
		assert.Equal(t, "SEDEX", got[1].ServiceName)
	})

	t.Run("ValidationReason", func(t *testing.T) {
		estimator := &MockShippingEstimator{}
		estimator.On("EstimateShipping", mock.Anything, mock.Anything).Return(
			[]domain.ShippingQuote(nil),
			domain.ValidationError{Reason: "invalid destination postal code"},
		)

		mux := http.NewServeMux()
		RegisterShipping(mux, estimator)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/shipping/estimates",
			strings.NewReader(estimateBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid destination postal code")
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterShipping(mux, &MockShippingEstimator{})

		req := httptest.NewRequest(
			http.MethodPost, "/v1/shipping/estimates",
			strings.NewReader("{broken"),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrdersHandler(t *testing.T) {
	const orderBody = `{
		"product_id": "luminaria-acdc",
		"quote": {"service_name": "PAC", "price": 35.50}
	}`

	t.Run("Placed", func(t *testing.T) {
		placed := domain.PlacedOrder{
			Summary: domain.OrderSummary{
				ProductID:       "luminaria-acdc",
				ProductName:     "Luminária ACDC",
				UnitPrice:       149.9,
				ShippingService: "PAC",
				ShippingPrice:   35.5,
				Total:           185.4,
			},
			PaymentReference: "TEST-reference",
			PlacedAt:         time.Now().UTC(),
		}

		orders := &MockOrders{}
		orders.On("PlaceOrder", mock.Anything, mock.Anything).Return(placed, nil)

		mux := http.NewServeMux()
		RegisterOrders(mux, orders, orders)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader(orderBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got PlacedOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "TEST-reference", got.PaymentReference)
		assert.InEpsilon(t, 185.4, got.Total, 1e-9)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		orders := &MockOrders{}
		orders.On("PlaceOrder", mock.Anything, mock.Anything).Return(
			domain.PlacedOrder{}, domain.ErrProductNotFound,
		)

		mux := http.NewServeMux()
		RegisterOrders(mux, orders, orders)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader(orderBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("IncompleteSelection", func(t *testing.T) {
		orders := &MockOrders{}
		orders.On("PlaceOrder", mock.Anything, mock.Anything).Return(
			domain.PlacedOrder{},
			domain.IncompleteSelectionError{Category: "modelos"},
		)

		mux := http.NewServeMux()
		RegisterOrders(mux, orders, orders)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader(orderBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "modelos")
	})

	t.Run("NoQuote", func(t *testing.T) {
		orders := &MockOrders{}
		orders.On("PlaceOrder", mock.Anything, mock.Anything).Return(
			domain.PlacedOrder{}, domain.IncompleteSelectionError{},
		)

		mux := http.NewServeMux()
		RegisterOrders(mux, orders, orders)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader(orderBody),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("FindNotFound", func(t *testing.T) {
		orders := &MockOrders{}
		orders.On("FindOrder", mock.Anything, "TEST-missing").Return(
			domain.PlacedOrder{}, domain.ErrOrderNotFound,
		)

		mux := http.NewServeMux()
		RegisterOrders(mux, orders, orders)

		req := httptest.NewRequest(
			http.MethodGet, "/v1/orders/TEST-missing", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStatsHandler(t *testing.T) {
	t.Run("Count", func(t *testing.T) {
		stats := &MockStats{}
		stats.On("EstimateCount", "200").Return(int64(7), nil)

		mux := http.NewServeMux()
		RegisterStats(mux, stats)

		req := httptest.NewRequest(
			http.MethodGet,
			"/v1/shipping/estimates/stats?destination_prefix=200", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got EstimateStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(7), got.Count)
		assert.Equal(t, "200", got.DestinationPrefix)
	})

	t.Run("NoContent", func(t *testing.T) {
		stats := &MockStats{}
		stats.On("EstimateCount", "999").Return(int64(0), nil)

		mux := http.NewServeMux()
		RegisterStats(mux, stats)

		req := httptest.NewRequest(
			http.MethodGet,
			"/v1/shipping/estimates/stats?destination_prefix=999", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("MissingPrefix", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterStats(mux, &MockStats{})

		req := httptest.NewRequest(
			http.MethodGet, "/v1/shipping/estimates/stats", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAllowJSON(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("JSONAccepted", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader("{}"),
		)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		AllowJSON(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("OtherMediaTypeRejected", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodPost, "/v1/orders", strings.NewReader("<xml/>"),
		)
		req.Header.Set("Content-Type", "application/xml")
		rec := httptest.NewRecorder()
		AllowJSON(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("EmptyBodyPassed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		AllowJSON(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
