package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wetigu/ai-playground/internal/errors"
	"github.com/wetigu/ai-playground/pkg/model"
	"github.com/wetigu/ai-playground/pkg/resource"
)

// resourceDef describes one API collection for the generic commands.
type resourceDef[T, P, W any] struct {
	name     string
	singular string
	path     string
	long     string

	// query registers list flags on cmd and returns a func building the
	// query from them.
	query func(cmd *cobra.Command) func() P

	header []string
	row    func(T) []string
}

func resourceCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   def.name,
		Short: fmt.Sprintf("Manage %s", def.name),
		Long:  def.long,
	}

	cmd.AddCommand(
		listCmd(a, def),
		getCmd(a, def),
		createCmd(a, def),
		updateCmd(a, def),
		deleteCmd(a, def),
	)
	return cmd
}

func listCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", def.name),
		Args:  cobra.NoArgs,
	}
	query := def.query(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		acc, err := resource.New[model.Page[T], P, W](a.client, def.path, a.accessorOptions()...)
		if err != nil {
			return err
		}
		defer a.watch(def.name, acc)()

		acc.FetchCollectionWith(cmd.Context(), query())
		if err := acc.Error(); err != nil {
			return errors.FromAPI(err)
		}

		page, _ := acc.Value()
		t := table{
			header: def.header,
			footer: fmt.Sprintf("page %d of %d, %d %s", page.Page, page.TotalPages, page.Total, def.name),
		}
		for _, item := range page.Items {
			t.rows = append(t.rows, def.row(item))
		}
		return a.render(page, t)
	}
	return cmd
}

func getCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Show one %s", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			acc, err := resource.New[T, P, W](a.client, def.path, a.accessorOptions()...)
			if err != nil {
				return err
			}
			defer a.watch(def.singular, acc)()

			acc.FetchOne(cmd.Context(), id)
			if err := acc.Error(); err != nil {
				return errors.FromAPI(err)
			}
			item, ok := acc.Value()
			if !ok {
				a.info("The backend returned no %s.", def.singular)
				return nil
			}
			return a.render(item, table{header: def.header, rows: [][]string{def.row(item)}})
		},
	}
}

func createCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create -f FILE",
		Short: fmt.Sprintf("Create a %s from a YAML or JSON file", def.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload[W](file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			acc, err := resource.New[T, P, W](a.client, def.path, a.accessorOptions()...)
			if err != nil {
				return err
			}
			defer a.watch(def.singular, acc)()

			item, ok := acc.Create(cmd.Context(), payload)
			if err := acc.Error(); err != nil {
				return errors.FromAPI(err)
			}
			a.success("Created %s", def.singular)
			if !ok {
				a.info("The backend returned no %s.", def.singular)
				return nil
			}
			return a.render(item, table{header: def.header, rows: [][]string{def.row(item)}})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `Payload file, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func updateCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: fmt.Sprintf("Update a %s; only fields present in the file change", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload[W](file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			acc, err := resource.New[T, P, W](a.client, def.path, a.accessorOptions()...)
			if err != nil {
				return err
			}
			defer a.watch(def.singular, acc)()

			item, ok := acc.Update(cmd.Context(), id, payload)
			if err := acc.Error(); err != nil {
				return errors.FromAPI(err)
			}
			a.success("Updated %s %d", def.singular, id)
			if !ok {
				a.info("The backend returned no %s.", def.singular)
				return nil
			}
			return a.render(item, table{header: def.header, rows: [][]string{def.row(item)}})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `Payload file, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func deleteCmd[T, P, W any](a *app, def resourceDef[T, P, W]) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", def.singular),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			acc, err := resource.New[T, P, W](a.client, def.path, a.accessorOptions()...)
			if err != nil {
				return err
			}
			defer a.watch(def.singular, acc)()

			if !acc.Remove(cmd.Context(), id) {
				return errors.FromAPI(acc.Error())
			}
			a.success("Deleted %s %d", def.singular, id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("S121").WithDetail(fmt.Sprintf("%q is not a positive integer ID.", s))
	}
	return id, nil
}

func productsCmd(a *app) *cobra.Command {
	return resourceCmd(a, resourceDef[model.Product, model.ProductQuery, model.ProductInput]{
		name:     "products",
		singular: "product",
		path:     "/products",
		long: `List, show, create, update and delete catalog products.

Payload files use the API field names:

  name: Widget
  price: 4.5
  category: hardware
  inStock: true`,
		query: func(cmd *cobra.Command) func() model.ProductQuery {
			var q model.ProductQuery
			var minPrice, maxPrice float64
			var inStock bool
			f := cmd.Flags()
			f.IntVar(&q.Page, "page", 0, "Page number, starting at 1")
			f.IntVar(&q.PerPage, "per-page", 0, "Items per page")
			f.StringVar(&q.Category, "category", "", "Only products in this category")
			f.StringVar(&q.Search, "search", "", "Match name or description")
			f.Float64Var(&minPrice, "min-price", 0, "Minimum price")
			f.Float64Var(&maxPrice, "max-price", 0, "Maximum price")
			f.BoolVar(&inStock, "in-stock", false, "Only products in stock (--in-stock=false for out of stock)")
			return func() model.ProductQuery {
				if f.Changed("min-price") {
					q.MinPrice = &minPrice
				}
				if f.Changed("max-price") {
					q.MaxPrice = &maxPrice
				}
				if f.Changed("in-stock") {
					q.InStock = &inStock
				}
				return q
			}
		},
		header: []string{"ID", "NAME", "CATEGORY", "PRICE", "IN STOCK"},
		row: func(p model.Product) []string {
			return []string{
				strconv.FormatInt(p.ID, 10),
				p.Name,
				p.Category,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				strconv.FormatBool(p.InStock),
			}
		},
	})
}

func ordersCmd(a *app) *cobra.Command {
	return resourceCmd(a, resourceDef[model.Order, model.OrderQuery, model.OrderInput]{
		name:     "orders",
		singular: "order",
		path:     "/orders",
		long: `List, show, create, update and delete customer orders.

Payload files use the API field names:

  userId: 1
  status: pending
  products:
    - productId: 2
      quantity: 3
      price: 19.99`,
		query: func(cmd *cobra.Command) func() model.OrderQuery {
			var q model.OrderQuery
			var status string
			f := cmd.Flags()
			f.IntVar(&q.Page, "page", 0, "Page number, starting at 1")
			f.IntVar(&q.PerPage, "per-page", 0, "Items per page")
			f.StringVar(&status, "status", "", "Only orders with this status")
			f.Int64Var(&q.UserID, "user", 0, "Only orders of this user ID")
			return func() model.OrderQuery {
				q.Status = model.OrderStatus(status)
				return q
			}
		},
		header: []string{"ID", "USER", "ITEMS", "TOTAL", "STATUS"},
		row: func(o model.Order) []string {
			return []string{
				strconv.FormatInt(o.ID, 10),
				strconv.FormatInt(o.UserID, 10),
				strconv.Itoa(len(o.Products)),
				strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
				string(o.Status),
			}
		},
	})
}

func usersCmd(a *app) *cobra.Command {
	return resourceCmd(a, resourceDef[model.User, model.UserQuery, model.UserInput]{
		name:     "users",
		singular: "user",
		path:     "/users",
		long: `List, show, create, update and delete user accounts.

Payload files use the API field names:

  username: ada
  email: ada@example.com
  isActive: true`,
		query: func(cmd *cobra.Command) func() model.UserQuery {
			var q model.UserQuery
			var active bool
			f := cmd.Flags()
			f.IntVar(&q.Page, "page", 0, "Page number, starting at 1")
			f.IntVar(&q.PerPage, "per-page", 0, "Items per page")
			f.StringVar(&q.Search, "search", "", "Match username or email")
			f.BoolVar(&active, "active", false, "Only active users (--active=false for inactive)")
			return func() model.UserQuery {
				if f.Changed("active") {
					q.IsActive = &active
				}
				return q
			}
		},
		header: []string{"ID", "USERNAME", "EMAIL", "ACTIVE"},
		row: func(u model.User) []string {
			return []string{
				strconv.FormatInt(u.ID, 10),
				u.Username,
				u.Email,
				strconv.FormatBool(u.IsActive),
			}
		},
	})
}
