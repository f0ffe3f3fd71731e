package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/corray333/commerce/internal/dal/interfaces/iaddressrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/dal/postgres"
	addressrepo "github.com/corray333/commerce/internal/dal/repositories/address/postgres"
	orderrepo "github.com/corray333/commerce/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/commerce/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/commerce/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/commerce/internal/dal/repositories/product/postgres"
	userrepo "github.com/corray333/commerce/internal/dal/repositories/user/postgres"
)

// UnitOfWork scopes the repositories the order engine touches to one pgx
// transaction. Before Begin the repositories run against the pool; after Begin
// they are rebound to the transaction so every read and write shares it.
type UnitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	userRepo      iuserrepo.IUserRepository
	addressRepo   iaddressrepo.IAddressRepository
	productRepo   iproductrepo.IProductRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the connection pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.GenericConn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.userRepo = userrepo.NewPostgresUserRepository(conn)
	u.addressRepo = addressrepo.NewPostgresAddressRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(conn)
}

// Begin starts a transaction and rebinds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if one was started.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Begin: rolling
// back an already committed transaction is a no-op error that is discarded.
func (u *UnitOfWork) Rollback(ctx context.Context) {
	if u.tx == nil {
		return
	}

	_ = u.tx.Rollback(ctx)
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) UserRepository() iuserrepo.IUserRepository {
	return u.userRepo
}

func (u *UnitOfWork) AddressRepository() iaddressrepo.IAddressRepository {
	return u.addressRepo
}

func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}
