package client

import "errors"

var ErrHistoryUnavailable = errors.New("history database unavailable")
