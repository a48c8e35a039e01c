package emailscout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/emailscout"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := emailscout.Errorf(emailscout.ENOTFOUND, "column %q not found", "website")

	assert.Equal(t, emailscout.ENOTFOUND, emailscout.ErrorCode(err))
	assert.Equal(t, "column \"website\" not found", emailscout.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading input: %w", emailscout.Errorf(emailscout.EINVALID, "bad row"))

	assert.Equal(t, emailscout.EINVALID, emailscout.ErrorCode(err))
	assert.Equal(t, "bad row", emailscout.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, emailscout.EINTERNAL, emailscout.ErrorCode(err))
	assert.Equal(t, "Internal error", emailscout.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, emailscout.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, emailscout.ErrorMessage(nil))
}
