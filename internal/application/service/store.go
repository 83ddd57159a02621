package service

import (
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
)

// storeFailure logs a persistence error and returns the opaque error the
// caller is allowed to see. AppErrors pass through untouched.
func storeFailure(log *logger.Logger, op string, adminID int64, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	log.Errorw("store operation failed",
		"op", op,
		"admin_id", adminID,
		"error", err,
	)
	return apperror.NewStoreError(op, err)
}
