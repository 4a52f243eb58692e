package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vrushil-parikh/quickpic/internal/cache"
	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/payment"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

// mockCartRepo implements repository.CartRepository with an in-memory map.
type mockCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart

	// addErrFor fails AddItem for the given product id.
	addErrFor map[string]error

	deleteCalls int
	deleteErr   error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		carts:     make(map[string]*domain.Cart),
		addErrFor: make(map[string]error),
	}
}

func (m *mockCartRepo) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepo) AddItem(_ context.Context, userID string, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.addErrFor[productID]; ok {
		return err
	}

	cart, ok := m.carts[userID]
	if !ok {
		cart = &domain.Cart{UserID: userID}
		m.carts[userID] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	cart.Items = append(cart.Items, domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	return nil
}

func (m *mockCartRepo) SetItemQuantity(_ context.Context, userID string, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return repository.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCartRepo) RemoveItem(_ context.Context, userID string, productID string) error {
	return m.SetItemQuantity(context.Background(), userID, productID, 0)
}

func (m *mockCartRepo) DeleteCart(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.carts[userID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}

func (m *mockCartRepo) cartFor(userID string) *domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[userID]
}

// mockProductRepo implements repository.ProductRepository over a fixed
// catalog. Calls to ListByCategory are counted per category.
type mockProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product

	byCategoryCalls map[string]int
	byCategoryErr   map[string]error
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	m := &mockProductRepo{
		products:        make(map[string]domain.Product),
		byCategoryCalls: make(map[string]int),
		byCategoryErr:   make(map[string]error),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *mockProductRepo) List(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCategoryCalls[categoryID]++
	if err, ok := m.byCategoryErr[categoryID]; ok {
		return nil, err
	}
	var result []domain.Product
	for _, p := range m.products {
		for _, id := range p.CategoryIDs {
			if id == categoryID {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

func (m *mockProductRepo) callsFor(categoryID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byCategoryCalls[categoryID]
}

// mockAddressRepo implements repository.AddressRepository.
type mockAddressRepo struct {
	addresses map[string]*domain.Address
}

func newMockAddressRepo(addresses ...*domain.Address) *mockAddressRepo {
	m := &mockAddressRepo{addresses: make(map[string]*domain.Address)}
	for _, a := range addresses {
		m.addresses[a.ID] = a
	}
	return m
}

func (m *mockAddressRepo) GetByID(_ context.Context, id string) (*domain.Address, error) {
	a, ok := m.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	return a, nil
}

// mockOrderRepo implements repository.OrderRepository. Created orders are
// captured; a repeated non-empty payment session id trips the unique
// constraint the way Postgres does.
type mockOrderRepo struct {
	mu      sync.Mutex
	created []*domain.Order

	// userOrders backs ListOrdersByUser, newest first.
	userOrders []*domain.Order

	createErr error
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if order.PaymentSessionID != "" {
		for _, existing := range m.created {
			if existing.PaymentSessionID == order.PaymentSessionID {
				return repository.ErrDuplicatePaymentSession
			}
		}
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.created {
		if order.ID == id {
			return order, nil
		}
	}
	for _, order := range m.userOrders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrdersByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Order
	for _, order := range m.userOrders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) ListOrders(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Order
	for _, order := range m.userOrders {
		if status == "" || order.Status == status {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.userOrders {
		if order.ID == id {
			order.Status = status
			order.UpdatedAt = time.Now()
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, order := range m.userOrders {
		if order.ID == id {
			m.userOrders = append(m.userOrders[:i], m.userOrders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *mockOrderRepo) createdOrders() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Order(nil), m.created...)
}

// mockPaymentProvider implements PaymentProvider.
type mockPaymentProvider struct {
	session    *payment.Session
	sessionErr error

	lineItems    []payment.LineItem
	lineItemsErr error

	createdParams  *payment.SessionParams
	lineItemsCalls int
}

func (m *mockPaymentProvider) CreateSession(_ context.Context, params payment.SessionParams) (*payment.Session, error) {
	m.createdParams = &params
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return m.session, nil
}

func (m *mockPaymentProvider) ListLineItems(_ context.Context, _ string) ([]payment.LineItem, error) {
	m.lineItemsCalls++
	if m.lineItemsErr != nil {
		return nil, m.lineItemsErr
	}
	return m.lineItems, nil
}

// mockEventPublisher implements EventPublisher.
type mockEventPublisher struct {
	mu            sync.Mutex
	created       []*domain.Order
	statusChanged []*domain.Order
	err           error
}

func (m *mockEventPublisher) OrderCreated(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockEventPublisher) OrderStatusChanged(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.statusChanged = append(m.statusChanged, order)
	return nil
}

func (m *mockEventPublisher) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

// mockCategoryCache implements cache.CategoryCache.
type mockCategoryCache struct {
	mu    sync.Mutex
	store map[string][]domain.Product
	gets  int
	sets  int
}

func newMockCategoryCache() *mockCategoryCache {
	return &mockCategoryCache{store: make(map[string][]domain.Product)}
}

func (m *mockCategoryCache) Get(_ context.Context, categoryID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	products, ok := m.store[categoryID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return products, nil
}

func (m *mockCategoryCache) Set(_ context.Context, categoryID string, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.store[categoryID] = products
	return nil
}

func (m *mockCategoryCache) Delete(_ context.Context, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, categoryID)
	return nil
}
