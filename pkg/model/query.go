package model

// DefaultPageSize matches the backend's per_page default.
const DefaultPageSize = 20

// MaxPageSize is the largest per_page the backend accepts.
const MaxPageSize = 100

// ProductQuery filters the product list. Zero values are omitted.
type ProductQuery struct {
	Page     int      `url:"page,omitempty"`
	PerPage  int      `url:"per_page,omitempty"`
	Category string   `url:"category,omitempty"`
	Search   string   `url:"search,omitempty"`
	MinPrice *float64 `url:"min_price,omitempty"`
	MaxPrice *float64 `url:"max_price,omitempty"`
	InStock  *bool    `url:"in_stock,omitempty"`
}

// OrderQuery filters the order list.
type OrderQuery struct {
	Page    int         `url:"page,omitempty"`
	PerPage int         `url:"per_page,omitempty"`
	Status  OrderStatus `url:"status,omitempty"`
	UserID  int64       `url:"user_id,omitempty"`
}

// UserQuery filters the user list.
type UserQuery struct {
	Page     int    `url:"page,omitempty"`
	PerPage  int    `url:"per_page,omitempty"`
	Search   string `url:"search,omitempty"`
	IsActive *bool  `url:"is_active,omitempty"`
}
