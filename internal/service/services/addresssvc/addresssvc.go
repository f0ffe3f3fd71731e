package addresssvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/commerce/internal/dal/interfaces/iaddressrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/address"
)

// AddressService manages shipping addresses.
type AddressService struct {
	addressRepo iaddressrepo.IAddressRepository
	userRepo    iuserrepo.IUserRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(
	addressRepo iaddressrepo.IAddressRepository,
	userRepo iuserrepo.IUserRepository,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
	}
}

// List retrieves all addresses.
func (s *AddressService) List(ctx context.Context) ([]address.Address, error) {
	return s.addressRepo.List(ctx)
}

// GetByID retrieves one address.
func (s *AddressService) GetByID(ctx context.Context, id int64) (address.Address, error) {
	return s.addressRepo.GetByID(ctx, id)
}

// Create stores a new address after resolving its owning user.
func (s *AddressService) Create(ctx context.Context, req address.CreateAddressModel) (address.Address, error) {
	if req.Street == "" {
		return address.Address{}, apperr.InvalidArgument("street cannot be empty")
	}
	if req.City == "" {
		return address.Address{}, apperr.InvalidArgument("city cannot be empty")
	}
	if req.UserID <= 0 {
		return address.Address{}, apperr.InvalidArgument("user id cannot be empty")
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return address.Address{}, err
	}

	now := time.Now()
	created, err := s.addressRepo.Insert(ctx, address.Address{
		UserID:    req.UserID,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return address.Address{}, err
	}

	slog.InfoContext(ctx, "Address created", "address_id", created.ID, "user_id", created.UserID)

	return created, nil
}

// Update applies a partial update: zero fields keep their stored values. A
// new owning user is resolved before it replaces the old reference.
func (s *AddressService) Update(ctx context.Context, id int64, req address.UpdateAddressModel) (address.Address, error) {
	a, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return address.Address{}, err
	}

	if req.Street != "" {
		a.Street = req.Street
	}
	if req.City != "" {
		a.City = req.City
	}
	if req.State != "" {
		a.State = req.State
	}
	if req.Zip != "" {
		a.Zip = req.Zip
	}
	if req.UserID > 0 {
		if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
			return address.Address{}, err
		}
		a.UserID = req.UserID
	}
	a.UpdatedAt = time.Now()

	updated, err := s.addressRepo.Update(ctx, a)
	if err != nil {
		return address.Address{}, err
	}

	slog.InfoContext(ctx, "Address updated", "address_id", id)

	return updated, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, id int64) error {
	if err := s.addressRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Address deleted", "address_id", id)

	return nil
}
