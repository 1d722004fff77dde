package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/observability"
	"storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	"storefront/internal/service/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Detail(ctx context.Context, slug string) (product.Detail, error)
}

type CartService interface {
	Get(ctx context.Context, token string) cart.View
	Add(ctx context.Context, token, sizeID string) (cart.View, string, error)
	UpdateAmount(ctx context.Context, token, sizeID string, rawAmount any) (cart.View, string, error)
	Remove(ctx context.Context, token, sizeID string) (cart.View, string, error)
}

type CheckoutService interface {
	Run(ctx context.Context, sub checkout.Submission, token string) (checkout.Result, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// Deps holds the services the routes delegate to.
type Deps struct {
	ProductSvc  ProductService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	Orders      OrderReader
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("httpserver: product service is required")
	case d.CartSvc == nil:
		return errors.New("httpserver: cart service is required")
	case d.CheckoutSvc == nil:
		return errors.New("httpserver: checkout service is required")
	case d.Orders == nil:
		return errors.New("httpserver: order reader is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, pool *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(observability.RequestLogger(logger), gin.Recovery())
	if len(opts.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := &handlers{deps: deps, logger: logger, cookies: newCookieTransport(opts)}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(pool))

	router.GET("/products", h.listProducts)
	router.GET("/products/:slug", h.productDetail)

	router.GET("/cart", h.getCart)
	router.POST("/cart/items", h.addCartItem)
	router.PATCH("/cart/items/:sizeId", h.updateCartItem)
	router.DELETE("/cart/items/:sizeId", h.removeCartItem)

	router.POST("/checkout", h.checkout)
	router.GET("/orders/:id", h.getOrder)

	return router, nil
}

type handlers struct {
	deps    Deps
	logger  *zap.Logger
	cookies cookieTransport
}

// writeError maps domain sentinels to status codes. Anything unrecognised is
// logged and reported as a generic 500.
func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
