package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	ctx := map[string]string{
		"owner_name": "Pat Alvarez",
		"unit":       "12B",
	}

	t.Run("substitutes known tags", func(t *testing.T) {
		out := Render("Dear {{owner_name}}, unit {{unit}} has a violation.", ctx)
		assert.Equal(t, "Dear Pat Alvarez, unit 12B has a violation.", out)
	})

	t.Run("unknown tags pass through unchanged", func(t *testing.T) {
		out := Render("Fine of {{fine_amount}} due {{due_date}}", ctx)
		assert.Equal(t, "Fine of {{fine_amount}} due {{due_date}}", out)
	})

	t.Run("tolerates inner whitespace", func(t *testing.T) {
		out := Render("Dear {{ owner_name }}", ctx)
		assert.Equal(t, "Dear Pat Alvarez", out)
	})

	t.Run("no tags", func(t *testing.T) {
		assert.Equal(t, "plain text", Render("plain text", ctx))
	})
}
