package replay

import "errors"

// ErrDecode is returned, wrapped with the offending line, for input that is
// not a valid event or stroke.
var ErrDecode = errors.New("failed to decode replay input")
