package backup

import "errors"

// Failure taxonomy. Login failures end the account; folder failures end the
// folder; message failures end only that message. Callers test with
// errors.Is.
var (
	ErrLogin        = errors.New("account login failed")
	ErrFolderSelect = errors.New("folder select failed")
	ErrFetch        = errors.New("message fetch failed")
	ErrParse        = errors.New("message parse failed")
	ErrStore        = errors.New("message store failed")
)
