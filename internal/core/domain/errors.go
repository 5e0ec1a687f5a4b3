package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidTitle is an error thrown when a tag title is empty or has no usable characters
var ErrInvalidTitle = errors.New("invalid title")

// ErrTitleTooLong is an error thrown when a tag title exceeds MaxTitleLength
var ErrTitleTooLong = errors.New("title too long")

// ErrInvalidPage is an error thrown when a page number is lower than 1
var ErrInvalidPage = errors.New("invalid page")

// ErrInvalidPerPage is an error thrown when a page size is out of range
var ErrInvalidPerPage = errors.New("invalid page size")

// ErrTransport is an error thrown when the tags API cannot be reached
var ErrTransport = errors.New("tags api unreachable")

// ErrMalformedResponse is an error thrown when the tags API answers with an undecodable body
var ErrMalformedResponse = errors.New("malformed response")

// ErrExportFailed is an error thrown when an export could not be stored
var ErrExportFailed = errors.New("export failed")

// ErrUnknownEvent is an error thrown when a consumed message cannot be decoded
var ErrUnknownEvent = errors.New("unknown event")
