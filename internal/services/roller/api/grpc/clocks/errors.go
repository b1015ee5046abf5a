package clocks

import (
	"errors"

	"github.com/louisbranch/troller/internal/clock"
	"github.com/louisbranch/troller/internal/clock/storage"
	apperrors "github.com/louisbranch/troller/internal/platform/errors"
)

var validationErrors = []error{
	clock.ErrNamespaceRequired,
	clock.ErrNameRequired,
	clock.ErrNameTooLong,
	clock.ErrInvalidSegments,
	clock.ErrInvalidFilled,
	clock.ErrInvalidColor,
}

// clockError maps clock and storage failures onto platform error codes.
func clockError(name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		err = apperrors.Wrap(apperrors.CodeNotFound, err, "Name", name)
	case errors.Is(err, storage.ErrAlreadyExists):
		err = apperrors.Wrap(apperrors.CodeClockAlreadyExists, err, "Name", name)
	case errors.Is(err, storage.ErrInvalidFilter):
		err = apperrors.Wrap(apperrors.CodeFilterInvalid, err, "Reason", err.Error())
	default:
		for _, target := range validationErrors {
			if errors.Is(err, target) {
				err = apperrors.Wrap(apperrors.CodeClockInvalid, err, "Reason", err.Error())
				break
			}
		}
	}
	return apperrors.Status(err)
}
