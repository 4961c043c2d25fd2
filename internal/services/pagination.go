package services

import "gorm.io/gorm"

// Page sizes per listing.
const (
	PerPageEntity    = 5
	PerPageAdminLogs = 10
)

// Pagination describes one page of an ordered listing.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
func (p Pagination) PrevNum() int  { return p.Page - 1 }
func (p Pagination) NextNum() int  { return p.Page + 1 }

// ListResponse is a page of rows. Pages past the end carry no items.
type ListResponse[T any] struct {
	Pagination
	Items []T `json:"items"`
}

// paginate counts the filtered query, then loads one page of it in the given order.
func paginate[T any](query *gorm.DB, order string, page, perPage int) (*ListResponse[T], error) {
	if page < 1 {
		page = 1
	}

	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	// only pages that exist are queried, so the offset stays below total
	items := make([]T, 0, perPage)
	if page <= pages {
		offset := (page - 1) * perPage
		if err := base.Order(order).Offset(offset).Limit(perPage).Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &ListResponse[T]{
		Pagination: Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages},
		Items:      items,
	}, nil
}
