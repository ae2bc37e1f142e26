package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/syssam/alchemy"
)

// Report is the outcome of Run.
type Report struct {
	Saved         bool
	Users         []User
	Admin         User
	Products      []Product
	Selling       Product
	SellingOwner  User
	Deleted       bool
	ProductsAfter []Product
	UserCount     uint64
	ProductCount  uint64
}

// ErrMigrate is returned when the demo tables cannot be created.
var ErrMigrate = errors.New("demo: migration failed")

// Run creates the demo tables and walks through the entity operations,
// writing each step to w.
func Run(ctx context.Context, c *alchemy.Client, w io.Writer) (*Report, error) {
	if !alchemy.MigrateAll(ctx, c, (*User)(nil).Descriptor(), (*Product)(nil).Descriptor()) {
		return nil, ErrMigrate
	}
	r := &Report{}

	r.Saved = alchemy.Save(ctx, c, &User{
		Name:     "johnDoe@gmail.com",
		Email:    "21john@gmail.com",
		Password: "p455w0rd",
	})
	fmt.Fprintf(w, "is save %t\n", r.Saved)
	fmt.Fprintf(w, "%+v\n", alchemy.All[User](ctx, c))

	alchemy.Create[User](ctx, c, alchemy.KW().
		Set("name", "joe").
		Set("email", "24nomeniavo@gmail.com").
		Set("password", "strongpassword"))
	r.Users = alchemy.All[User](ctx, c)
	fmt.Fprintf(w, "1: %+v\n", r.Users)

	credentials := func() *alchemy.Kwargs {
		return alchemy.KW().Set("email", "24nomeniavo@gmail.com").Set("password", "strongpassword")
	}
	if user, ok := alchemy.Get[User](ctx, c, credentials()); ok {
		user.Role = "admin"
		alchemy.UpdateEntity(ctx, c, &user)
	}
	admin, ok := alchemy.Get[User](ctx, c, credentials())
	if !ok {
		return r, fmt.Errorf("demo: user %q not found", "joe")
	}
	r.Admin = admin
	fmt.Fprintf(w, "2: %+v\n", admin)

	alchemy.Create[Product](ctx, c, alchemy.KW().
		Set("name", "tomato").
		Set("price", 1000.0).
		Set("description", "").
		Set("owner", admin.ID))
	r.Products = alchemy.All[Product](ctx, c)
	r.ProductCount = alchemy.Count[Product](ctx, c)
	fmt.Fprintf(w, "3: %+v\n", r.Products)

	r.Selling, _ = alchemy.Get[Product](ctx, c, alchemy.KW().Set("is_sel", true))
	fmt.Fprintf(w, "4: %+v\n", r.Selling)

	r.SellingOwner, _ = alchemy.Get[User](ctx, c, alchemy.KW().Set("owner__product__is_sel", true))
	fmt.Fprintf(w, "5: %+v\n", r.SellingOwner)

	r.Deleted = alchemy.Delete(ctx, c, r.Products)
	fmt.Fprintf(w, "is deleted = %t\n", r.Deleted)

	r.ProductsAfter = alchemy.All[Product](ctx, c)
	r.UserCount = alchemy.Count[User](ctx, c)
	fmt.Fprintf(w, "6: %+v\n", r.ProductsAfter)
	return r, nil
}
