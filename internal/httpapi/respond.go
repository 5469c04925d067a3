package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func writeJSON(c *fiber.Ctx, status int, env dto.Envelope) error {
	env.Success = status < 400
	return c.Status(status).JSON(env)
}

func ok(c *fiber.Ctx, data any) error {
	return writeJSON(c, fiber.StatusOK, dto.Envelope{Data: data})
}

// fail maps service errors onto the status codes of the public API.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var (
		verr  *service.ValidationError
		nf    *service.NotFoundError
		cf    *service.ConflictError
		perr  *service.PersistenceError
		ferr  *fiber.Error
		env   dto.Envelope
		state int
	)

	switch {
	case errors.As(err, &verr):
		state = fiber.StatusBadRequest
		env.Error = verr.Error()
		if len(verr.Fields) > 0 {
			env.Details = verr.Fields
		}
	case errors.As(err, &nf):
		state = fiber.StatusNotFound
		env.Error = nf.Error()
	case errors.As(err, &cf):
		state = fiber.StatusConflict
		env.Error = cf.Error()
	case errors.As(err, &perr):
		state = fiber.StatusInternalServerError
		env.Error = "internal error"
		if s.exposeErrors() {
			env.Details = perr.Error()
		}
		slog.Error("persistence failure", "path", c.Path(), "op", perr.Op, "error", perr.Err)
	case errors.As(err, &ferr):
		state = ferr.Code
		env.Error = ferr.Message
	default:
		state = fiber.StatusInternalServerError
		env.Error = "internal error"
		if s.exposeErrors() {
			env.Details = err.Error()
		}
		slog.Error("unhandled error", "path", c.Path(), "error", err)
	}
	return writeJSON(c, state, env)
}

// errorHandler catches errors that escape handlers, e.g. unknown routes.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	return s.fail(c, err)
}

func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return &service.ValidationError{Fields: map[string]string{"body": "is required"}}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &service.ValidationError{Fields: map[string]string{"body": "must be valid JSON"}}
	}
	return nil
}

func pathInt64(c *fiber.Ctx, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, &service.ValidationError{Fields: map[string]string{jsonName(name): "must be a positive integer"}}
	}
	return n, nil
}

func jsonName(param string) string {
	switch param {
	case "userId":
		return "user_id"
	default:
		return param
	}
}

// resolveUser picks the caller's principal first and the body value second.
func resolveUser(c *fiber.Ctx, raw any) (int64, error) {
	if raw != nil {
		id, err := service.ParseUserID(raw)
		if err != nil {
			return 0, &service.ValidationError{Fields: map[string]string{"user_id": err.Error()}}
		}
		return id, nil
	}
	if id, ok := principal(c); ok {
		return id, nil
	}
	return 0, &service.ValidationError{Fields: map[string]string{"user_id": "is required"}}
}
