package validator_test

import (
	"strings"
	"testing"

	"memoflow/src/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title   string `validate:"required,max=100,safe_text,no_sql_injection"`
	Content string `validate:"required,max=10000,safe_text"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := validator.NewCustomValidator()

	t.Run("valid request passes", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{
			Title:   "買い物リスト",
			Content: "milk, eggs\nbread",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{Content: "body"})
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "Title", verrs.Errors[0].Field)
		assert.Contains(t, verrs.Errors[0].Message, "required")
	})

	t.Run("over-long title fails", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{
			Title:   strings.Repeat("a", 101),
			Content: "body",
		})
		require.Error(t, err)

		verrs := err.(validator.ValidationErrors)
		assert.Equal(t, "max", verrs.Errors[0].Tag)
	})

	t.Run("control characters are rejected", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{
			Title:   "bad\x00title",
			Content: "body",
		})
		assert.Error(t, err)
	})

	t.Run("tab and newline are allowed", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{
			Title:   "ok title",
			Content: "line one\n\tline two",
		})
		assert.NoError(t, err)
	})

	t.Run("sql injection patterns are rejected", func(t *testing.T) {
		err := cv.Validate(&sampleRequest{
			Title:   "UNION SELECT password",
			Content: "body",
		})
		assert.Error(t, err)
	})
}
