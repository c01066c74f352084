package pagination

import (
	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Query is a 1-based page request.
type Query struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// FromContext binds ?page=&size= and clamps them. Malformed values fall back
// to the first page of DefaultSize.
func FromContext(c *gin.Context) Query {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		return Query{Page: 1, Size: DefaultSize}
	}
	return q.clamp()
}

func (q Query) clamp() Query {
	q.Page = max(q.Page, 1)
	switch {
	case q.Size < 1:
		q.Size = DefaultSize
	case q.Size > MaxSize:
		q.Size = MaxSize
	}
	return q
}

func (q Query) offset() int { return (q.Page - 1) * q.Size }

// Paginate counts the rows matched by db, loads the requested page into dest
// and returns the page metadata. db carries the filters and ordering.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	q = q.clamp()

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}
