package errs_test

import (
	"errors"
	"testing"

	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("packageId", "123")

		assert.Equal(t, "packageId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("packageId", "123", cause)

		assert.Equal(t, "packageId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: packageId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("trackingNumber")

		assert.Equal(t, "trackingNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: trackingNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("trackingNumber", cause)

		assert.Equal(t, "trackingNumber", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: trackingNumber (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 150, 0, 120)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is weight, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("destination")

		assert.Equal(t, "destination", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: destination", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("destination", cause)

		assert.Equal(t, "destination", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: destination (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestForbiddenError(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("package", "pkg-1", "actor-2")

		assert.Equal(t, "package", err.EntityName)
		assert.Equal(t, "pkg-1", err.EntityID)
		assert.Equal(t, "actor-2", err.ActorID)
		assert.Equal(t, "forbidden: actor actor-2 does not own package pkg-1", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})

	t.Run("classifies via errors.Is", func(t *testing.T) {
		var err error = errs.NewForbiddenError("shipment", "s-1", "a-1")
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("consolidation", "c-1", "already completed")

		assert.Equal(t, "consolidation", err.EntityName)
		assert.Equal(t, "c-1", err.EntityID)
		assert.Equal(t, "conflict: consolidation c-1: already completed", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("status is completed")
		err := errs.NewConflictErrorWithCause("consolidation", "c-1", "cannot cancel", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "conflict: consolidation c-1: cannot cancel (cause: status is completed)", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestExternalServiceError(t *testing.T) {
	t.Run("NewExternalServiceError", func(t *testing.T) {
		err := errs.NewExternalServiceError("dhl")

		assert.Equal(t, "dhl", err.Service)
		require.NoError(t, err.Cause)
		assert.Equal(t, "external service error: dhl", err.Error())
		assert.Equal(t, errs.ErrExternalService, err.Unwrap())
	})

	t.Run("NewExternalServiceErrorWithCause", func(t *testing.T) {
		cause := errors.New("api returned 500")
		err := errs.NewExternalServiceErrorWithCause("dhl", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "external service error: dhl (cause: api returned 500)", err.Error())
		require.ErrorIs(t, err, errs.ErrExternalService)
	})
}

func TestPartialFailureError(t *testing.T) {
	t.Run("NewPartialFailureError", func(t *testing.T) {
		cause := errors.New("update failed")
		err := errs.NewPartialFailureError("create carrier label", []string{"carrier label created"}, cause)

		assert.Equal(t, "create carrier label", err.Operation)
		assert.Equal(t, []string{"carrier label created"}, err.CompletedSteps)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"partial failure: create carrier label, completed steps: [carrier label created] (cause: update failed)",
			err.Error())
		assert.Equal(t, errs.ErrPartialFailure, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrExternalService)
		require.Error(t, errs.ErrPartialFailure)
	})
}
