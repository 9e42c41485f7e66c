package main

import (
	"github.com/labstack/echo/v4"

	"ECommerceAPI/internal/services"
)

func registerCustomerRoutes(g *echo.Group, cs *services.CustomerService, r responder) {
	p := g.Group("/customers")

	p.GET("", func(c echo.Context) error {
		customers, err := cs.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(200, customers)
	})

	p.POST("", func(c echo.Context) error {
		body, err := payload(c)
		if err != nil {
			return badBody(c)
		}
		id, err := cs.Create(c.Request().Context(), body)
		if err != nil {
			return r.fail(c, err)
		}
		return r.created(c, "New customer successfully added", id)
	})

	// GET /customers/by-email?email=
	p.GET("/by-email", func(c echo.Context) error {
		cust, err := cs.GetByEmail(c.Request().Context(), c.QueryParam("email"))
		return found(r, c, cust, err)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		cust, err := cs.GetByID(c.Request().Context(), id)
		return found(r, c, cust, err)
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
		if err := cs.Update(c.Request().Context(), id, body); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Customer updated successfully")
	})

	p.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		if err := cs.Delete(c.Request().Context(), id); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Customer removed successfully")
	})
}
