package pagination

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Normalize clamps page/limit and returns the offset and effective limit for
// an offset+limit query. Page is zero-based: page 0 with limit 20 covers rows
// 0..19, page 1 covers 20..39.
func Normalize(page, limit int) (offset, effectiveLimit int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page * limit, limit
}
