package option

import "gorm.io/gorm"

// QueryOption customizes a gorm list statement (ordering, paging, extra filters).
type QueryOption interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

func WithOrder(order string) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Order(order)
	})
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return stmt
		}
		return stmt.Limit(limit)
	})
}

func WithOffset(offset int) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return stmt
		}
		return stmt.Offset(offset)
	})
}

func Where(query any, args ...any) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where(query, args...)
	})
}
