package game

import "errors"

var ErrSendBufferFull = errors.New("player send buffer full")
