package database

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

const (
	retryInitialInterval = 50 * time.Millisecond
	retryMaxInterval     = time.Second
)

// Transaction runs fn inside a transaction, retrying persistence failures up
// to maxRetries extra times. Errors fn returns as *apperr.Error (other than
// store errors) are not retried and are returned as-is; anything else that
// survives the retries is wrapped as a store error.
func Transaction(ctx context.Context, db *gorm.DB, maxRetries int, fn func(tx *gorm.DB) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryInitialInterval
	exp.MaxInterval = retryMaxInterval
	exp.Reset()

	attempts := 0
	for {
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if !isRetryableStoreErr(err) {
			return err
		}
		if ctx.Err() != nil || attempts >= maxRetries {
			return asStoreError(err)
		}

		attempts++
		select {
		case <-time.After(exp.NextBackOff()):
		case <-ctx.Done():
			return asStoreError(err)
		}
	}
}

func isRetryableStoreErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind == apperr.KindStore
	}
	return true
}

func asStoreError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if IsDuplicateKey(err) {
		return apperr.Store(err, "duplicate key")
	}
	return apperr.Store(err, "persistence failure")
}

// IsDuplicateKey reports whether err is a unique-key violation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
