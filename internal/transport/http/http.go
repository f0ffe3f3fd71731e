package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/corray333/commerce/internal/service/models/address"
	authmodel "github.com/corray333/commerce/internal/service/models/auth"
	"github.com/corray333/commerce/internal/service/models/category"
	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/product"
	"github.com/corray333/commerce/internal/service/models/user"
	createorder "github.com/corray333/commerce/internal/transport/http/v1/create_order"
	deleteorder "github.com/corray333/commerce/internal/transport/http/v1/delete_order"
	getorder "github.com/corray333/commerce/internal/transport/http/v1/get_order"
	listorders "github.com/corray333/commerce/internal/transport/http/v1/list_orders"
	updatestatus "github.com/corray333/commerce/internal/transport/http/v1/update_status"
	authmw "github.com/corray333/commerce/pkg/http/middleware/auth"
	tracemw "github.com/corray333/commerce/pkg/http/middleware/trace"
	"github.com/corray333/commerce/pkg/logger"
)

type orderService interface {
	Create(ctx context.Context, req order.CreateOrderModel) (order.Order, error)
	GetOrders(ctx context.Context) ([]order.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]order.Order, error)
	GetOrdersByStatus(ctx context.Context, statusLabel string) ([]order.Order, error)
	GetOrderByID(ctx context.Context, id int64) (order.Order, error)
	UpdateStatus(ctx context.Context, id int64, statusLabel string) (order.Order, error)
	Delete(ctx context.Context, id int64) error
}

type userService interface {
	List(ctx context.Context, sort string) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Create(ctx context.Context, req user.CreateUserModel) (user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserModel) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type productService interface {
	List(ctx context.Context, sort string) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (product.Product, error)
	Create(ctx context.Context, req product.CreateProductModel) (product.Product, error)
	Update(ctx context.Context, id int64, req product.UpdateProductModel) (product.Product, error)
	Delete(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, name, contentType string, data []byte) (product.Product, error)
	GetImage(ctx context.Context, id int64) ([]byte, string, error)
}

type categoryService interface {
	List(ctx context.Context, sort string) ([]category.Category, error)
	GetByID(ctx context.Context, id uint8) (category.Category, error)
	Create(ctx context.Context, name string) (category.Category, error)
	Update(ctx context.Context, id uint8, name string) (category.Category, error)
	Delete(ctx context.Context, id uint8) error
}

type addressService interface {
	List(ctx context.Context) ([]address.Address, error)
	GetByID(ctx context.Context, id int64) (address.Address, error)
	Create(ctx context.Context, req address.CreateAddressModel) (address.Address, error)
	Update(ctx context.Context, id int64, req address.UpdateAddressModel) (address.Address, error)
	Delete(ctx context.Context, id int64) error
}

type authService interface {
	Register(ctx context.Context, req authmodel.RegisterModel) (authmodel.TokenModel, error)
	Login(ctx context.Context, req authmodel.LoginModel) (authmodel.TokenModel, error)
}

// Services bundles everything the HTTP surface needs.
type Services struct {
	Order    orderService
	User     userService
	Product  productService
	Category categoryService
	Address  addressService
	Auth     authService
}

// NewServices creates the service bundle for the transport.
func NewServices(
	order orderService,
	user userService,
	product productService,
	category categoryService,
	address addressService,
	auth authService,
) Services {
	return Services{
		Order:    order,
		User:     user,
		Product:  product,
		Category: category,
		Address:  address,
		Auth:     auth,
	}
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	services Services
}

func NewHTTPTransport(services Services) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		services: services,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the server, letting in-flight requests finish.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	requireAuth := authmw.NewAuthMiddleware(os.Getenv("COMMERCE_JWT_SECRET"))

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}/status", h.updateOrderStatus)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
			r.Post("/{id}/image", h.uploadProductImage)
			r.Get("/{id}/image", h.getProductImage)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
			r.Get("/{id}", h.getCategory)
			r.Put("/{id}", h.updateCategory)
			r.Delete("/{id}", h.deleteCategory)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", h.listAddresses)
			r.Post("/", h.createAddress)
			r.Get("/{id}", h.getAddress)
			r.Put("/{id}", h.updateAddress)
			r.Delete("/{id}", h.deleteAddress)
		})

		r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, viper.GetString("server.http.openapi_path"))
		})
	})

	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.json"),
	))
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.services.Order)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.services.Order)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.services.Order)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.services.Order)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.services.Order)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(tracemw.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
