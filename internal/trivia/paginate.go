package trivia

import "fmt"

// Paginate returns the 1-based page of items. A page past the end is empty, not an error.
func Paginate[T any](items []T, page, size int) ([]T, error) {
	if size <= 0 {
		return nil, fmt.Errorf("page size %d: %w", size, ErrInvalidInput)
	}
	if page <= 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrInvalidInput)
	}

	// Compare page counts first; (page-1)*size overflows for huge pages.
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}, nil
	}
	start := (page - 1) * size
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, nil
}
