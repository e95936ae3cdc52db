package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/ocean-status/internal/model"
	"github.com/i474232898/ocean-status/internal/ocean"
)

var validate = validator.New()

// DefaultRequestTimeout bounds one status request end to end.
const DefaultRequestTimeout = 30 * time.Second

type routeOptions struct {
	requestTimeout time.Duration
}

// RouteOption customizes RegisterRoutes.
type RouteOption func(*routeOptions)

// WithRequestTimeout sets the per-request deadline handed to the service.
func WithRequestTimeout(d time.Duration) RouteOption {
	return func(o *routeOptions) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// StatusService is what the routes need from the ocean service.
type StatusService interface {
	GetOceanStatus(ctx context.Context, regionID string) (*model.AggregateResponse, error)
	Regions() []model.RegionConfig
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service StatusService, opts ...RouteOption) {
	o := routeOptions{requestTimeout: DefaultRequestTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	v1 := app.Group("/api/v1")

	status := func(c *fiber.Ctx, raw string) error {
		q := regionQuery{Region: strings.TrimSpace(raw)}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "region is required")
		}

		// fasthttp never cancels UserContext on client disconnect, so the
		// deadline is the only cancellation that reaches the providers.
		ctx, cancel := context.WithTimeout(c.UserContext(), o.requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		resp, err := service.GetOceanStatus(ctx, q.Region)
		if err != nil {
			if errors.Is(err, ocean.ErrUnknownRegion) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			slog.Error("ocean status failed", "region", q.Region, "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute ocean status")
		}
		return c.JSON(resp)
	}

	v1.Get("/ocean/status", func(c *fiber.Ctx) error {
		return status(c, c.Query("region"))
	})

	v1.Get("/ocean/status/:region", func(c *fiber.Ctx) error {
		return status(c, c.Params("region"))
	})

	v1.Get("/regions", func(c *fiber.Ctx) error {
		regions := service.Regions()
		out := make([]regionSummary, 0, len(regions))
		for _, r := range regions {
			out = append(out, regionSummary{
				ID:      r.ID,
				Name:    r.Name,
				Aliases: r.Aliases,
				Lat:     r.Lat,
				Lon:     r.Lon,
			})
		}
		return c.JSON(fiber.Map{"regions": out})
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type regionQuery struct {
	Region string `validate:"required,max=64"`
}

type regionSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
}
