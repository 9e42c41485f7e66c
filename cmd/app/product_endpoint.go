package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ECommerceAPI/internal/services"
)

func registerProductRoutes(g *echo.Group, ps *services.ProductService, r responder) {
	p := g.Group("/products")

	p.GET("", func(c echo.Context) error {
		products, err := ps.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, products)
	})

	p.POST("", func(c echo.Context) error {
		body, err := payload(c)
		if err != nil {
			return badBody(c)
		}
		id, err := ps.Create(c.Request().Context(), body)
		if err != nil {
			return r.fail(c, err)
		}
		return r.created(c, "New product successfully added", id)
	})

	p.GET("/by-name", func(c echo.Context) error {
		product, err := ps.GetByName(c.Request().Context(), c.QueryParam("name"))
		return found(r, c, product, err)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		product, err := ps.GetByID(c.Request().Context(), id)
		return found(r, c, product, err)
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
		if err := ps.Update(c.Request().Context(), id, body); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Product updated successfully")
	})

	p.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		if err := ps.Delete(c.Request().Context(), id); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Product removed successfully")
	})
}
