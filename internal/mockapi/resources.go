package mockapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wetigu/ai-playground/pkg/model"
)

func productHandlers(s *Server) handlers[model.Product, model.ProductInput] {
	return handlers[model.Product, model.ProductInput]{
		create: func(id int64, in model.ProductInput, now time.Time) model.Product {
			p := model.Product{ID: id, InStock: true, CreatedAt: now}
			in.Apply(&p)
			p.UpdatedAt = now
			return p
		},
		apply: func(p *model.Product, in model.ProductInput, now time.Time) {
			in.Apply(p)
			p.UpdatedAt = now
		},
		validate: func(in model.ProductInput, creating bool) error {
			if creating && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
				return errors.New("name is required")
			}
			if creating && in.Price == nil {
				return errors.New("price is required")
			}
			if in.Price != nil && *in.Price <= 0 {
				return errors.New("price must be greater than 0")
			}
			return nil
		},
		filter: func(q map[string][]string) (func(model.Product) bool, error) {
			category := strings.ToLower(first(q, "category"))
			search := strings.ToLower(first(q, "search"))
			minPrice, err := optionalFloat(q, "min_price")
			if err != nil {
				return nil, err
			}
			maxPrice, err := optionalFloat(q, "max_price")
			if err != nil {
				return nil, err
			}
			inStock, err := optionalBool(q, "in_stock")
			if err != nil {
				return nil, err
			}
			return func(p model.Product) bool {
				if category != "" && strings.ToLower(p.Category) != category {
					return false
				}
				if search != "" &&
					!strings.Contains(strings.ToLower(p.Name), search) &&
					!strings.Contains(strings.ToLower(p.Description), search) {
					return false
				}
				if minPrice != nil && p.Price < *minPrice {
					return false
				}
				if maxPrice != nil && p.Price > *maxPrice {
					return false
				}
				if inStock != nil && p.InStock != *inStock {
					return false
				}
				return true
			}, nil
		},
	}
}

func orderHandlers(s *Server) handlers[model.Order, model.OrderInput] {
	return handlers[model.Order, model.OrderInput]{
		create: func(id int64, in model.OrderInput, now time.Time) model.Order {
			o := model.Order{ID: id, Status: model.OrderPending, CreatedAt: now}
			in.Apply(&o)
			o.UpdatedAt = now
			return o
		},
		apply: func(o *model.Order, in model.OrderInput, now time.Time) {
			in.Apply(o)
			o.UpdatedAt = now
		},
		validate: func(in model.OrderInput, creating bool) error {
			if creating && in.UserID == nil {
				return errors.New("userId is required")
			}
			if creating && len(in.Products) == 0 {
				return errors.New("an order needs at least one product")
			}
			for i, item := range in.Products {
				if item.Quantity <= 0 {
					return fmt.Errorf("products[%d]: quantity must be greater than 0", i)
				}
				if item.Price <= 0 {
					return fmt.Errorf("products[%d]: price must be greater than 0", i)
				}
				if _, ok := s.products.get(item.ProductID); !ok {
					return fmt.Errorf("products[%d]: unknown product %d", i, item.ProductID)
				}
			}
			if in.Status != nil && !in.Status.Valid() {
				return fmt.Errorf("unknown status %q", *in.Status)
			}
			return nil
		},
		filter: func(q map[string][]string) (func(model.Order) bool, error) {
			status := model.OrderStatus(first(q, "status"))
			if status != "" && !status.Valid() {
				return nil, fmt.Errorf("unknown status %q", status)
			}
			var userID int64
			if v := first(q, "user_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return nil, errors.New("user_id must be an integer")
				}
				userID = id
			}
			return func(o model.Order) bool {
				if status != "" && o.Status != status {
					return false
				}
				if userID != 0 && o.UserID != userID {
					return false
				}
				return true
			}, nil
		},
	}
}

func userHandlers(s *Server) handlers[model.User, model.UserInput] {
	return handlers[model.User, model.UserInput]{
		create: func(id int64, in model.UserInput, now time.Time) model.User {
			u := model.User{ID: id, IsActive: true, CreatedAt: now}
			in.Apply(&u)
			return u
		},
		apply: func(u *model.User, in model.UserInput, _ time.Time) {
			in.Apply(u)
		},
		validate: func(in model.UserInput, creating bool) error {
			if creating && (in.Username == nil || *in.Username == "") {
				return errors.New("username is required")
			}
			if in.Email != nil && !strings.Contains(*in.Email, "@") {
				return errors.New("email is not valid")
			}
			if creating && in.Email == nil {
				return errors.New("email is required")
			}
			return nil
		},
		filter: func(q map[string][]string) (func(model.User) bool, error) {
			search := strings.ToLower(first(q, "search"))
			active, err := optionalBool(q, "is_active")
			if err != nil {
				return nil, err
			}
			return func(u model.User) bool {
				if search != "" &&
					!strings.Contains(strings.ToLower(u.Username), search) &&
					!strings.Contains(strings.ToLower(u.Email), search) {
					return false
				}
				if active != nil && u.IsActive != *active {
					return false
				}
				return true
			}, nil
		},
	}
}

func optionalFloat(q map[string][]string, key string) (*float64, error) {
	v := first(q, key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", key)
	}
	return &f, nil
}

func optionalBool(q map[string][]string, key string) (*bool, error) {
	v := first(q, key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &b, nil
}

func (s *Server) seed() {
	now := s.now()
	catalog := []model.ProductInput{
		{Name: model.Ptr("Widget"), Description: model.Ptr("A standard widget"), Price: model.Ptr(4.5), Category: model.Ptr("hardware")},
		{Name: model.Ptr("Gadget"), Description: model.Ptr("A clever gadget"), Price: model.Ptr(19.99), Category: model.Ptr("hardware")},
		{Name: model.Ptr("Sprocket"), Description: model.Ptr("Fits most chains"), Price: model.Ptr(2.25), Category: model.Ptr("parts"), InStock: model.Ptr(false)},
	}
	h := productHandlers(s)
	for _, in := range catalog {
		in := in
		s.products.insert(func(id int64) model.Product { return h.create(id, in, now) })
	}

	user := s.users.insert(func(id int64) model.User {
		return model.User{ID: id, Username: "demo", Email: "demo@tigu.dev", IsActive: true, CreatedAt: now}
	})

	oh := orderHandlers(s)
	s.orders.insert(func(id int64) model.Order {
		return oh.create(id, model.OrderInput{
			UserID:   model.Ptr(user.ID),
			Products: []model.OrderItem{{ProductID: 1, Quantity: 2, Price: 4.5}},
		}, now)
	})
}
