package model

// Write payloads are partial shapes of their entity: nil fields are omitted
// from the request body and left unchanged by the backend.

// ProductInput creates or updates a Product.
type ProductInput struct {
	Name        *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Category    *string  `json:"category,omitempty" yaml:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	InStock     *bool    `json:"inStock,omitempty" yaml:"inStock,omitempty"`
}

// Apply copies the set fields of in onto p.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
}

// OrderInput creates or updates an Order.
type OrderInput struct {
	UserID   *int64       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Products []OrderItem  `json:"products,omitempty" yaml:"products,omitempty"`
	Status   *OrderStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// Apply copies the set fields of in onto o and recomputes the total.
func (in OrderInput) Apply(o *Order) {
	if in.UserID != nil {
		o.UserID = *in.UserID
	}
	if in.Products != nil {
		o.Products = append([]OrderItem(nil), in.Products...)
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	o.TotalAmount = 0
	for _, item := range o.Products {
		o.TotalAmount += item.Subtotal()
	}
}

// UserInput creates or updates a User.
type UserInput struct {
	Username  *string `json:"username,omitempty" yaml:"username,omitempty"`
	Email     *string `json:"email,omitempty" yaml:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty" yaml:"isActive,omitempty"`
}

// Apply copies the set fields of in onto u.
func (in UserInput) Apply(u *User) {
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
}

// Ptr returns a pointer to v. It keeps literal payloads short:
//
//	model.ProductInput{Price: model.Ptr(9.99)}
func Ptr[T any](v T) *T {
	return &v
}
