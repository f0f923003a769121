package domain

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "id"
)

// SortDirection - направление сортировки
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection разбирает направление сортировки без учета регистра
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return SortAsc, true
	case "DESC":
		return SortDesc, true
	}
	return "", false
}

// PageRequest - параметры запроса страницы (нумерация с 0)
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction SortDirection
}

// DefaultPageRequest возвращает страницу по умолчанию: 0, 10, id ASC
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page:      0,
		Size:      DefaultPageSize,
		Sort:      DefaultSort,
		Direction: SortAsc,
	}
}

// Normalize подставляет значения по умолчанию вместо некорректных
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	if p.Direction != SortDesc {
		p.Direction = SortAsc
	}
	return p
}

// Offset возвращает смещение первой записи страницы
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page - страница результатов с метаданными
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// NewPage собирает страницу из элементов и общего количества записей
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:       items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
		Empty:         len(items) == 0,
	}
}
