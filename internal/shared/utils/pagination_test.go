package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", 0, 0, 1, 25},
		{"negative page", -5, 10, 1, 10},
		{"page size capped", 1, 500, 1, 100},
		{"valid values kept", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 2, TotalPages(30, 25))
	assert.Equal(t, 1, TotalPages(10, 0))
}

func TestClampPage(t *testing.T) {
	// 30 tickets at 25 per page is exactly 2 pages.
	assert.Equal(t, 1, ClampPage(1, 30, 25))
	assert.Equal(t, 2, ClampPage(2, 30, 25))
	assert.Equal(t, 2, ClampPage(99, 30, 25))
	assert.Equal(t, 1, ClampPage(0, 30, 25))
	assert.Equal(t, 1, ClampPage(7, 0, 25))
}
