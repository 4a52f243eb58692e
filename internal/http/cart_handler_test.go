package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/service"
)

type cartServiceMock struct {
	view *domain.CartView
	err  error

	addedProductID string
	addedQuantity  int
}

func (m *cartServiceMock) GetCart(_ context.Context, _ string) (*domain.CartView, error) {
	return m.view, m.err
}

func (m *cartServiceMock) AddItem(_ context.Context, _ string, productID string, quantity int) error {
	m.addedProductID = productID
	m.addedQuantity = quantity
	return m.err
}

func (m *cartServiceMock) UpdateQuantity(_ context.Context, _ string, _ string, _ int) error {
	return m.err
}

func (m *cartServiceMock) RemoveItem(_ context.Context, _ string, _ string) error {
	return m.err
}

func TestGetCart_EnvelopeShape(t *testing.T) {
	mock := &cartServiceMock{view: &domain.CartView{
		Items: []domain.CartViewItem{
			{Product: domain.Product{ID: "p-1", Name: "Bread"}, Quantity: 2, Subtotal: 60},
		},
		Total: 60,
	}}
	handler := NewCartHandler(mock)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, authedRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Message string          `json:"message"`
		Error   bool            `json:"error"`
		Success bool            `json:"success"`
		Data    domain.CartView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Error)
	assert.Equal(t, 60.0, resp.Data.Total)
}

func TestAddItem_Success(t *testing.T) {
	mock := &cartServiceMock{}
	handler := NewCartHandler(mock)

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest(http.MethodPost, "/api/cart/items", []byte(`{"productId":"p-1","quantity":3}`)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "p-1", mock.addedProductID)
	assert.Equal(t, 3, mock.addedQuantity)
}

func TestAddItem_MissingProductID(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{})

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest(http.MethodPost, "/api/cart/items", []byte(`{"quantity":3}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Error)
}

func TestAddItem_NonPositiveQuantity(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{})

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest(http.MethodPost, "/api/cart/items", []byte(`{"productId":"p-1","quantity":0}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_MalformedBody(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{})

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest(http.MethodPost, "/api/cart/items", []byte(`{`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_ValidationErrorMapsTo400(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{err: service.ErrValidation})

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest(http.MethodPost, "/api/cart/items", []byte(`{"productId":"p-x","quantity":1}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
