package offprint_test

import (
	"testing"

	"github.com/mlapinski/offprint"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := offprint.Errorf(offprint.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, offprint.ENOTFOUND, offprint.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", offprint.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, offprint.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, offprint.ErrorMessage(nil))
}
