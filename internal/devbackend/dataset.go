package devbackend

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/oleastore/go-admin-console/orders"
	"github.com/oleastore/go-admin-console/products"
	"github.com/oleastore/go-admin-console/users"
)

// pageSize matches the backend's admin pagination.
const pageSize = 10

// Dataset is the development backend's in-memory state. It stands in for
// the real platform database.
type Dataset struct {
	mu       sync.RWMutex
	users    map[string]*users.User
	products map[string]*products.Product
	orders   map[string]*orders.Order
}

func NewDataset() *Dataset {
	return &Dataset{
		users:    make(map[string]*users.User),
		products: make(map[string]*products.Product),
		orders:   make(map[string]*orders.Order),
	}
}

// SeedAdmin creates (or replaces) an admin account with the given password.
func (d *Dataset) SeedAdmin(email, password string) (*users.User, error) {
	if err := users.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := users.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	admin := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     "admin",
		Role:         users.RoleAdmin,
		Active:       true,
		PasswordHash: hash,
	}
	d.users[admin.ID] = admin
	return admin, nil
}

func (d *Dataset) UserByEmail(email string) (*users.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Email == email {
			copied := *u
			return &copied, true
		}
	}
	return nil, false
}

func (d *Dataset) UserByID(id string) (*users.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, false
	}
	copied := *u
	return &copied, true
}

func (d *Dataset) UpsertUser(u users.User) users.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	stored := u
	d.users[stored.ID] = &stored
	return u
}

func (d *Dataset) DeleteUser(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; !ok {
		return false
	}
	delete(d.users, id)
	return true
}

func (d *Dataset) ListUsers() []users.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]users.User, 0, len(d.users))
	for _, u := range d.users {
		list = append(list, *u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list
}

func (d *Dataset) ProductByID(id string) (*products.Product, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.products[id]
	if !ok {
		return nil, false
	}
	copied := *p
	return &copied, true
}

func (d *Dataset) UpsertProduct(p products.Product) products.Product {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	stored := p
	d.products[stored.ID] = &stored
	return p
}

func (d *Dataset) DeleteProduct(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.products[id]; !ok {
		return false
	}
	delete(d.products, id)
	return true
}

func (d *Dataset) ListProducts() []products.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]products.Product, 0, len(d.products))
	for _, p := range d.products {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (d *Dataset) OrderByID(id string) (*orders.Order, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	o, ok := d.orders[id]
	if !ok {
		return nil, false
	}
	copied := *o
	return &copied, true
}

func (d *Dataset) UpsertOrder(o orders.Order) orders.Order {
	d.mu.Lock()
	defer d.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	stored := o
	d.orders[stored.ID] = &stored
	return o
}

func (d *Dataset) DeleteOrder(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.orders[id]; !ok {
		return false
	}
	delete(d.orders, id)
	return true
}

func (d *Dataset) ListOrders() []orders.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]orders.Order, 0, len(d.orders))
	for _, o := range d.orders {
		list = append(list, *o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderID < list[j].OrderID })
	return list
}

// page slices a listing into the backend's pagination envelope shape.
// page numbers start at 1; 0 means the first page.
func page[T any](items []T, pageNum int) (results []T, count int) {
	if pageNum <= 0 {
		pageNum = 1
	}
	count = len(items)
	start := (pageNum - 1) * pageSize
	if start >= len(items) {
		return []T{}, count
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], count
}
