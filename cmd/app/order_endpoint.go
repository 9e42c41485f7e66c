package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ECommerceAPI/internal/services"
)

func registerOrderRoutes(g *echo.Group, os *services.OrderService, r responder) {
	p := g.Group("/orders")

	p.GET("", func(c echo.Context) error {
		orders, err := os.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})

	// POST /orders accepts product_ids, or a single product_id
	p.POST("", func(c echo.Context) error {
		body, err := payload(c)
		if err != nil {
			return badBody(c)
		}
		id, err := os.Create(c.Request().Context(), body)
		if err != nil {
			return r.fail(c, err)
		}
		return r.created(c, "New order successfully added", id)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		order, err := os.GetByID(c.Request().Context(), id)
		return found(r, c, order, err)
	})

	p.PUT("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		body, err := payload(c)
		if err != nil {
			return badBody(c)
		}
		if err := os.Update(c.Request().Context(), id, body); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Order updated successfully")
	})

	p.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		if err := os.Delete(c.Request().Context(), id); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Order removed successfully")
	})

	p.POST("/:id/deliver", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		if err := os.MarkDelivered(c.Request().Context(), id); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Order marked as delivered")
	})
}
