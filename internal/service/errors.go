package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the struct tags of a request message.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps the domain error taxonomy onto Connect codes.
func toConnectError(err error) error {
	var (
		connectErr    *connect.Error
		validationErr *models.ValidationError
		conflictErr   *models.ConflictError
		notFoundErr   *models.NotFoundError
		storeErr      *storage.Error
	)
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &conflictErr):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.As(err, &notFoundErr):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.As(err, &storeErr):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
