package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/trendora/storefront-api/models"
)

// Memory is an in-memory Store with the same transactional contract as the
// Postgres one. A transaction clones the dataset under the store's mutex and
// runs against the clone; the clone replaces the live data only when the
// callback returns nil. Holding the mutex for the whole transaction gives the
// serialization the database provides with row locks.
type Memory struct {
	mu   sync.Mutex
	data *memData
}

func NewMemory() *Memory {
	return &Memory{data: &memData{
		products:  map[uint]models.Product{},
		cartItems: map[uint]models.CartItem{},
		orders:    map[uint]models.Order{},
		users:     map[string]models.User{},
	}}
}

func (m *Memory) Products() ProductStore { return lockedProducts{m} }
func (m *Memory) Carts() CartStore       { return lockedCarts{m} }
func (m *Memory) Orders() OrderStore     { return lockedOrders{m} }
func (m *Memory) Users() UserStore       { return lockedUsers{m} }

func (m *Memory) Transaction(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := m.data.clone()
	if err := fn(&memTx{data: clone}); err != nil {
		return err
	}
	m.data = clone
	return nil
}

// SeedUser inserts an identity row, for tests and local fixtures.
func (m *Memory) SeedUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.users[u.ID] = u
}

// memTx is a Store bound to one transaction clone. No locking: the root store
// holds its mutex for the whole transaction.
type memTx struct {
	data *memData
}

func (t *memTx) Products() ProductStore { return txProducts{t.data} }
func (t *memTx) Carts() CartStore       { return txCarts{t.data} }
func (t *memTx) Orders() OrderStore     { return txOrders{t.data} }
func (t *memTx) Users() UserStore       { return txUsers{t.data} }

func (t *memTx) Transaction(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

type memData struct {
	products  map[uint]models.Product
	cartItems map[uint]models.CartItem
	orders    map[uint]models.Order
	users     map[string]models.User

	productSeq   uint
	cartItemSeq  uint
	orderSeq     uint
	orderItemSeq uint
}

func (d *memData) clone() *memData {
	c := &memData{
		products:     make(map[uint]models.Product, len(d.products)),
		cartItems:    make(map[uint]models.CartItem, len(d.cartItems)),
		orders:       make(map[uint]models.Order, len(d.orders)),
		users:        make(map[string]models.User, len(d.users)),
		productSeq:   d.productSeq,
		cartItemSeq:  d.cartItemSeq,
		orderSeq:     d.orderSeq,
		orderItemSeq: d.orderItemSeq,
	}
	for id, p := range d.products {
		c.products[id] = p
	}
	for id, item := range d.cartItems {
		c.cartItems[id] = item
	}
	for id, o := range d.orders {
		o.Items = append([]models.OrderItem(nil), o.Items...)
		c.orders[id] = o
	}
	for id, u := range d.users {
		c.users[id] = u
	}
	return c
}

func (d *memData) listProducts() []models.Product {
	out := make([]models.Product, 0, len(d.products))
	for _, p := range d.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *memData) getProduct(id uint) (models.Product, error) {
	p, ok := d.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (d *memData) createProduct(p *models.Product) error {
	d.productSeq++
	p.ID = d.productSeq
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	d.products[p.ID] = *p
	return nil
}

func (d *memData) saveProduct(p *models.Product) error {
	if _, ok := d.products[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	d.products[p.ID] = *p
	return nil
}

func (d *memData) deleteProduct(id uint) error {
	if _, ok := d.products[id]; !ok {
		return ErrNotFound
	}
	delete(d.products, id)
	return nil
}

func (d *memData) withProduct(item models.CartItem) models.CartItem {
	if p, ok := d.products[item.ProductID]; ok {
		item.Product = p
	}
	return item
}

func (d *memData) cartItemsForUser(userID string) []models.CartItem {
	var out []models.CartItem
	for _, item := range d.cartItems {
		if item.UserID == userID {
			out = append(out, d.withProduct(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *memData) getCartItem(id uint) (models.CartItem, error) {
	item, ok := d.cartItems[id]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	return d.withProduct(item), nil
}

func (d *memData) findCartItem(userID string, productID uint) (models.CartItem, error) {
	for _, item := range d.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			return d.withProduct(item), nil
		}
	}
	return models.CartItem{}, ErrNotFound
}

func (d *memData) createCartItem(item *models.CartItem) error {
	d.cartItemSeq++
	item.ID = d.cartItemSeq
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	d.cartItems[item.ID] = *item
	return nil
}

func (d *memData) saveCartItem(item *models.CartItem) error {
	if _, ok := d.cartItems[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	d.cartItems[item.ID] = *item
	return nil
}

func (d *memData) deleteCartItem(id uint) error {
	if _, ok := d.cartItems[id]; !ok {
		return ErrNotFound
	}
	delete(d.cartItems, id)
	return nil
}

func (d *memData) clearUserCart(userID string) error {
	for id, item := range d.cartItems {
		if item.UserID == userID {
			delete(d.cartItems, id)
		}
	}
	return nil
}

func (d *memData) createOrder(o *models.Order) error {
	d.orderSeq++
	o.ID = d.orderSeq
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	for i := range o.Items {
		d.orderItemSeq++
		o.Items[i].ID = d.orderItemSeq
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = append([]models.OrderItem(nil), o.Items...)
	d.orders[o.ID] = stored
	return nil
}

func (d *memData) materializeOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	for i := range o.Items {
		if p, ok := d.products[o.Items[i].ProductID]; ok {
			o.Items[i].Product = p
		}
	}
	return o
}

func (d *memData) getOrder(id uint) (models.Order, error) {
	o, ok := d.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return d.materializeOrder(o), nil
}

func (d *memData) ordersForUser(userID string) []models.Order {
	var out []models.Order
	for _, o := range d.orders {
		if o.UserID == userID {
			out = append(out, d.materializeOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (d *memData) ordersBetween(from, to time.Time) []models.Order {
	var out []models.Order
	for _, o := range d.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			out = append(out, d.materializeOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *memData) getUser(id string) (models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

// Root accessors lock per call; tx accessors run under the transaction lock.

type lockedProducts struct{ m *Memory }

func (r lockedProducts) List(ctx context.Context) ([]models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.listProducts(), nil
}

func (r lockedProducts) Get(ctx context.Context, id uint) (models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.getProduct(id)
}

func (r lockedProducts) GetForUpdate(ctx context.Context, id uint) (models.Product, error) {
	return r.Get(ctx, id)
}

func (r lockedProducts) Create(ctx context.Context, p *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.createProduct(p)
}

func (r lockedProducts) Save(ctx context.Context, p *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.saveProduct(p)
}

func (r lockedProducts) Delete(ctx context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.deleteProduct(id)
}

type txProducts struct{ data *memData }

func (r txProducts) List(ctx context.Context) ([]models.Product, error) {
	return r.data.listProducts(), nil
}

func (r txProducts) Get(ctx context.Context, id uint) (models.Product, error) {
	return r.data.getProduct(id)
}

func (r txProducts) GetForUpdate(ctx context.Context, id uint) (models.Product, error) {
	return r.data.getProduct(id)
}

func (r txProducts) Create(ctx context.Context, p *models.Product) error {
	return r.data.createProduct(p)
}

func (r txProducts) Save(ctx context.Context, p *models.Product) error {
	return r.data.saveProduct(p)
}

func (r txProducts) Delete(ctx context.Context, id uint) error {
	return r.data.deleteProduct(id)
}

type lockedCarts struct{ m *Memory }

func (r lockedCarts) ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.cartItemsForUser(userID), nil
}

func (r lockedCarts) GetItem(ctx context.Context, id uint) (models.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.getCartItem(id)
}

func (r lockedCarts) FindItem(ctx context.Context, userID string, productID uint) (models.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.findCartItem(userID, productID)
}

func (r lockedCarts) CreateItem(ctx context.Context, item *models.CartItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.createCartItem(item)
}

func (r lockedCarts) SaveItem(ctx context.Context, item *models.CartItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.saveCartItem(item)
}

func (r lockedCarts) DeleteItem(ctx context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.deleteCartItem(id)
}

func (r lockedCarts) ClearUser(ctx context.Context, userID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.clearUserCart(userID)
}

type txCarts struct{ data *memData }

func (r txCarts) ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	return r.data.cartItemsForUser(userID), nil
}

func (r txCarts) GetItem(ctx context.Context, id uint) (models.CartItem, error) {
	return r.data.getCartItem(id)
}

func (r txCarts) FindItem(ctx context.Context, userID string, productID uint) (models.CartItem, error) {
	return r.data.findCartItem(userID, productID)
}

func (r txCarts) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.data.createCartItem(item)
}

func (r txCarts) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.data.saveCartItem(item)
}

func (r txCarts) DeleteItem(ctx context.Context, id uint) error {
	return r.data.deleteCartItem(id)
}

func (r txCarts) ClearUser(ctx context.Context, userID string) error {
	return r.data.clearUserCart(userID)
}

type lockedOrders struct{ m *Memory }

func (r lockedOrders) Create(ctx context.Context, o *models.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.createOrder(o)
}

func (r lockedOrders) Get(ctx context.Context, id uint) (models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.getOrder(id)
}

func (r lockedOrders) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.ordersForUser(userID), nil
}

func (r lockedOrders) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.ordersBetween(from, to), nil
}

type txOrders struct{ data *memData }

func (r txOrders) Create(ctx context.Context, o *models.Order) error {
	return r.data.createOrder(o)
}

func (r txOrders) Get(ctx context.Context, id uint) (models.Order, error) {
	return r.data.getOrder(id)
}

func (r txOrders) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.data.ordersForUser(userID), nil
}

func (r txOrders) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return r.data.ordersBetween(from, to), nil
}

type lockedUsers struct{ m *Memory }

func (r lockedUsers) Get(ctx context.Context, id string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.data.getUser(id)
}

type txUsers struct{ data *memData }

func (r txUsers) Get(ctx context.Context, id string) (models.User, error) {
	return r.data.getUser(id)
}
