package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned by repositories and lookups for missing records.
var ErrNotFound = status.Errorf(codes.NotFound, "not found")
