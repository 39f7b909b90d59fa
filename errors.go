package goggles

import "errors"

// ErrUnsupportedFormat is returned by Open and LoadAll when no opener is
// registered for a path's extension.
var ErrUnsupportedFormat = errors.New("goggles: unsupported font format")
