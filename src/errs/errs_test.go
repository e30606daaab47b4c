package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappingKeepsKind(t *testing.T) {
	err := fmt.Errorf("fit: %w", Invalid("begin %s after end %s", "2016-02-01", "2016-01-01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrInternalLogic)
	assert.Contains(t, err.Error(), "begin 2016-02-01 after end 2016-01-01")
	assert.Equal(t, 2, ExitCode(err))
	assert.Equal(t, 1, ExitCode(Internal("max %v <= min %v", 70, 70)))
	assert.Equal(t, 0, ExitCode(nil))
}

func TestExternalToolError(t *testing.T) {
	err := fmt.Errorf("render: %w", NewExternalToolError("pdflatex", "! Undefined control sequence.", context.DeadlineExceeded))
	var te *ExternalToolError
	if assert.True(t, errors.As(err, &te)) {
		assert.Equal(t, "pdflatex", te.Tool)
		assert.Contains(t, te.Output, "Undefined control sequence")
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	te.Dir = "/tmp/wcg-1"
	assert.Contains(t, te.Error(), "work dir kept at /tmp/wcg-1")
}
