package calendar

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Page — одна страница списка встреч (или чего угодно ещё).
type Page[T any] struct {
	Items    []T
	Page     int // с 1
	PageSize int
	HasNext  bool
	HasPrev  bool
	Total    int
}

// Paginate режет items на страницу page размером pageSize.
// page <= 0 — первая страница, pageSize <= 0 — DefaultPageSize, больше MaxPageSize — обрезается.
// Страница за концом списка возвращается пустой.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
