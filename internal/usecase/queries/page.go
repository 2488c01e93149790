package queries

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is the shared shape of every paginated read: Total counts all
// matching rows before skip/limit are applied.
type Page[T any] struct {
	Total  int64 `json:"total"`
	Result []T   `json:"result"`
}

// NormalizePage maps 1-based page numbers onto skip/limit, treating page
// values below 1 as the first page.
func NormalizePage(page, limit int) (offset, normalizedLimit int32) {
	limit = ValidateLimit(limit)
	if page < 1 {
		page = 1
	}
	return int32((page - 1) * limit), int32(limit)
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
