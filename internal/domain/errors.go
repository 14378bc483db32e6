package domain

import "errors"

var ErrSnapshotNotFound = errors.New("reminder snapshot not found")
