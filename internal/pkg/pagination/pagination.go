package pagination

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters. Pages are zero-based, matching
// the catalog clients (`?page=0&size=6`).
type Params struct {
	Page   int `json:"page"`
	Size   int `json:"size"`
	Offset int `json:"-"`
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// MaxSize is the maximum number of items per page
const MaxSize = 100

// MaxPage keeps Page*Size within int32 so the offset never overflows
const MaxPage = math.MaxInt32 / MaxSize

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx, defaultSize int) *Params {
	return New(c.Query("page"), c.Query("size"), defaultSize)
}

// New builds Params from raw query values. Unparseable or out of range
// values fall back to page 0 and defaultSize.
func New(rawPage, rawSize string, defaultSize int) *Params {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 0 {
		page = 0
	}
	if page > MaxPage {
		page = MaxPage
	}

	size, err := strconv.Atoi(rawSize)
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return &Params{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int(total) / params.Size
	if int(total)%params.Size > 0 {
		totalPages++
	}

	return &Meta{
		Page:       params.Page,
		Size:       params.Size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page+1 < totalPages,
		HasPrev:    params.Page > 0,
	}
}
