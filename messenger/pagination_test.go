package messenger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	req := require.New(t)

	p := NewPagination(2, 20, 45)
	req.Equal(2, p.CurrentPage)
	req.Equal(3, p.TotalPages)
	req.EqualValues(45, p.TotalItems)
	req.True(p.HasNextPage)
	req.True(p.HasPrevPage)
	req.Equal(20, p.Limit)

	last := NewPagination(3, 20, 45)
	req.False(last.HasNextPage)
	req.True(last.HasPrevPage)

	empty := NewPagination(1, 20, 0)
	req.Equal(0, empty.TotalPages)
	req.False(empty.HasNextPage)
	req.False(empty.HasPrevPage)
}

func TestConfig_Clamp(t *testing.T) {
	req := require.New(t)
	config := DefaultConfig()

	req.Equal(1, config.ClampPage(0))
	req.Equal(1, config.ClampPage(-3))
	req.Equal(7, config.ClampPage(7))

	req.Equal(20, config.ClampLimit(0))
	req.Equal(20, config.ClampLimit(-1))
	req.Equal(50, config.ClampLimit(50))
	req.Equal(100, config.ClampLimit(500))
}
