package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFields(t *testing.T) {
	errBoom := errors.New("boom")

	got := fields([]any{"table", "tbl_category_master", errBoom, zap.Int("count", 3), "dangling"})

	assert.Len(t, got, 4)
	assert.Equal(t, "table", got[0].Key)
	assert.Equal(t, "error", got[1].Key)
	assert.Equal(t, "count", got[2].Key)
	assert.Equal(t, "detail", got[3].Key)
}
