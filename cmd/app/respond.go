package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"ECommerceAPI/internal/apperr"
	"ECommerceAPI/internal/schema"
)

// responder turns service results into JSON responses.
type responder struct {
	log logrus.FieldLogger
}

func (r responder) fail(c echo.Context, err error) error {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, verr.Fields)
	}

	switch apperr.Classify(err) {
	case apperr.ClassNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case apperr.ClassConflict:
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case apperr.ClassUnavailable:
		r.log.WithError(err).Warn("store unavailable")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "service unavailable"})
	case apperr.ClassIntegrity:
		r.log.WithError(err).Error("data integrity fault")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "data integrity fault"})
	default:
		r.log.WithError(err).Error("unexpected error")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (r responder) created(c echo.Context, msg string, id int64) error {
	return c.JSON(http.StatusCreated, map[string]interface{}{"message": msg, "id": id})
}

func (r responder) ok(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}

// found writes v, or 404 when a lookup by attribute matched nothing.
func found[T any](r responder, c echo.Context, v *T, err error) error {
	if err != nil {
		return r.fail(c, err)
	}
	if v == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, v)
}

// parseID reads the :id path parameter. A non-numeric id addresses no row.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.ErrNotFound
	}
	return id, nil
}

// payload decodes the JSON body into a schema.Payload. An empty body is an
// empty payload so the validator reports every missing field.
func payload(c echo.Context) (schema.Payload, error) {
	p := schema.Payload{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}
