package ordersvc

import (
	"context"

	"github.com/corray333/commerce/internal/service/models/address"
	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/product"
	"github.com/corray333/commerce/internal/service/models/user"
)

// resolvedReferences holds the live entities an order request points at.
// products is parallel to the request's item list.
type resolvedReferences struct {
	user     user.User
	address  *address.Address
	products []product.Product
}

// resolveReferences fetches and validates every entity the request references:
// the user, the optional shipping address and each product, in item-list
// order. It is read-only and fails on the first missing entity, before any
// write has happened.
func resolveReferences(
	ctx context.Context,
	work unitOfWork,
	req order.CreateOrderModel,
) (resolvedReferences, error) {
	u, err := work.UserRepository().GetByID(ctx, req.UserID)
	if err != nil {
		return resolvedReferences{}, err
	}

	refs := resolvedReferences{user: u}

	// Absence of a shipping address is not an error, a dangling reference is.
	if req.ShippingAddressID != nil {
		a, err := work.AddressRepository().GetByID(ctx, *req.ShippingAddressID)
		if err != nil {
			return resolvedReferences{}, err
		}
		refs.address = &a
	}

	refs.products = make([]product.Product, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		p, err := work.ProductRepository().GetByID(ctx, line.ProductID)
		if err != nil {
			return resolvedReferences{}, err
		}
		refs.products = append(refs.products, p)
	}

	return refs, nil
}
