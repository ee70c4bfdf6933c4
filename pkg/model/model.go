package model

import "time"

// User is a storefront account.
type User struct {
	ID        int64     `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Email     string    `json:"email" yaml:"email"`
	FirstName string    `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	IsActive  bool      `json:"isActive" yaml:"isActive"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Product is a catalog item.
type Product struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Price       float64   `json:"price" yaml:"price"`
	Category    string    `json:"category" yaml:"category"`
	ImageURL    string    `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	InStock     bool      `json:"inStock" yaml:"inStock"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID int64   `json:"productId" yaml:"productId"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Price     float64 `json:"price" yaml:"price"`
}

// Subtotal returns quantity times unit price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// Order is a customer order.
type Order struct {
	ID          int64       `json:"id" yaml:"id"`
	UserID      int64       `json:"userId" yaml:"userId"`
	Products    []OrderItem `json:"products" yaml:"products"`
	TotalAmount float64     `json:"totalAmount" yaml:"totalAmount"`
	Status      OrderStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T `json:"items" yaml:"items"`
	Total      int `json:"total" yaml:"total"`
	Page       int `json:"page" yaml:"page"`
	PageSize   int `json:"pageSize" yaml:"pageSize"`
	TotalPages int `json:"totalPages" yaml:"totalPages"`
}

// NewPage slices all into the requested page. page is 1-based; values below
// 1 are clamped.
func NewPage[T any](all []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(all)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, all[start:end])

	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
