package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ECommerceAPI/internal/services"
)

func registerCustomerAccountRoutes(g *echo.Group, as *services.CustomerAccountService, r responder) {
	p := g.Group("/customer_accounts")

	p.GET("", func(c echo.Context) error {
		accounts, err := as.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, accounts)
	})

	p.POST("", func(c echo.Context) error {
		body, err := payload(c)
		if err != nil {
			return badBody(c)
		}
		id, err := as.Create(c.Request().Context(), body)
		if err != nil {
			return r.fail(c, err)
		}
		return r.created(c, "New customer account successfully added", id)
	})

	// GET /customer_accounts/:id returns the account nested with its customer
	p.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		detail, err := as.GetByID(c.Request().Context(), id)
		return found(r, c, detail, err)
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
		if err := as.Update(c.Request().Context(), id, body); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Customer Account updated successfully")
	})

	p.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return r.fail(c, err)
		}
		if err := as.Delete(c.Request().Context(), id); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, "Customer Account removed successfully")
	})
}
