package iaddressrepo

import (
	"context"

	"github.com/corray333/commerce/internal/service/models/address"
)

// IAddressRepository is an interface for the address postgres repository.
type IAddressRepository interface {
	GetByID(ctx context.Context, id int64) (address.Address, error)
	List(ctx context.Context) ([]address.Address, error)
	Insert(ctx context.Context, a address.Address) (address.Address, error)
	Update(ctx context.Context, a address.Address) (address.Address, error)
	Delete(ctx context.Context, id int64) error
}
