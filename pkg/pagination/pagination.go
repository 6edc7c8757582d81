// Package pagination holds the page-windowing policy shared by every
// global listing: fixed-size 0-indexed pages over a descending ordering,
// with page 0 always valid so an empty catalog is not an error.
package pagination

import "cliptube/pkg/errno"

// PageCount returns ceil(total/perPage). perPage must be positive.
func PageCount(total, perPage int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Validate checks a requested page against the catalog size. Valid pages
// are 0 when the catalog is empty, else [0, PageCount). Anything past the
// end fails with NoMoreVideosErr.
func Validate(page, perPage, total int64) error {
	if page < 0 || perPage <= 0 {
		return errno.ParamErr.WithMessage("page must be >= 0 and per_page > 0")
	}
	if page == 0 {
		return nil
	}
	if page >= PageCount(total, perPage) {
		return errno.NoMoreVideosErr
	}
	return nil
}

// ValidateConversation is the looser rule used by message history: the
// boundary page equal to PageCount is an empty page, not an error, and
// only pages past it fail with NoMoreMessagesErr.
func ValidateConversation(page, perPage, total int64) error {
	if page < 0 || perPage <= 0 {
		return errno.ParamErr.WithMessage("page must be >= 0 and per_page > 0")
	}
	if page == 0 {
		return nil
	}
	if page > PageCount(total, perPage) {
		return errno.NoMoreMessagesErr
	}
	return nil
}

// Window returns the half-open row range [offset, offset+limit) for a page
// already checked with Validate.
func Window(page, perPage int64) (offset, limit int64) {
	return page * perPage, perPage
}
