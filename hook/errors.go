package hook

import "errors"

/* Structural errors are sentinels so the HTTP layer can map them to status codes
 * with errors.Is instead of matching strings. Engines wrap them with the slug.
 */
var (
	ErrNotFound        = errors.New("hook not found")
	ErrConflict        = errors.New("hook already exists")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrInvalidMetadata = errors.New("metadata must be a JSON object")
)
