package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_LengthAndHasNext(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 15, 30} {
		for _, size := range []int{1, 3, 10} {
			for page := 0; page <= n/size+2; page++ {
				t.Run(fmt.Sprintf("n=%d/size=%d/page=%d", n, size, page), func(t *testing.T) {
					got, err := Paginate(seq(n), page, size)
					require.NoError(t, err)

					want := max(0, min(size, n-page*size))
					assert.Len(t, got.Items, want)
					assert.Equal(t, (page+1)*size < n, got.PageInfo.HasNext)
					assert.Equal(t, page > 0, got.PageInfo.HasPrevious)
					assert.Equal(t, n, got.PageInfo.Total)
					assert.NotNil(t, got.Items)
				})
			}
		}
	}
}

func TestPaginate_SecondPageOfFifteen(t *testing.T) {
	got, err := Paginate(seq(15), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13, 14, 15}, got.Items)
	assert.Equal(t, PageInfo{Total: 15, Page: 1, Size: 10, HasNext: false, HasPrevious: true}, got.PageInfo)
}

func TestPaginate_FarPastEnd(t *testing.T) {
	got, err := Paginate(seq(3), 1<<40, 1<<30)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.False(t, got.PageInfo.HasNext)
}

func TestPaginate_RejectsBadArguments(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
	}{
		{"zero size", 0, 0},
		{"negative size", 0, -1},
		{"negative page", -1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Paginate(seq(5), tt.page, tt.size)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidArgument))
		})
	}
}
