package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Default ukuran halaman mengikuti tabel panel admin (10 baris per halaman).
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageParams hasil parsing query ?page= & ?per_page=.
type PageParams struct {
	Page    int
	PerPage int
}

// ParsePageParams membaca parameter paginasi dari query string dengan
// clamp ke nilai yang masuk akal.
func ParsePageParams(c *gin.Context) PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if page < 1 {
		page = DefaultPage
	}

	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return PageParams{Page: page, PerPage: perPage}
}

// TotalPages menghitung jumlah halaman = ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageSlice mengambil jendela halaman dari slice yang sudah terfilter,
// mempertahankan urutan aslinya. Halaman di luar jangkauan menghasilkan
// slice kosong.
func PageSlice[T any](items []T, p PageParams) []T {
	start := (p.Page - 1) * p.PerPage
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
