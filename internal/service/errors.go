package service

import "errors"

// Avatar processing errors. Both map to client errors at the API boundary.
var (
	// ErrAvatarTooLarge is returned when an upload exceeds the size bound
	// before any decoding is attempted.
	ErrAvatarTooLarge = errors.New("avatar exceeds maximum allowed size")

	// ErrAvatarBadType is returned for uploads that are not jpg, jpeg or
	// png, or whose bytes cannot be decoded as an image.
	ErrAvatarBadType = errors.New("avatar must be a valid jpg, jpeg or png file")
)
