package engine

import "errors"

// ErrInvalidDataset is returned when a data file cannot be turned into records.
var ErrInvalidDataset = errors.New("invalid dataset")

// ErrUnsupportedValue is returned for attribute values outside the supported
// shapes (text, number, list of text, map of text or number).
var ErrUnsupportedValue = errors.New("unsupported attribute value")

var ErrIndexOutOfRange = errors.New("index out of range")
