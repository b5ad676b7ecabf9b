package ratelimit

import "errors"

// ErrStore возвращается при ошибке обращения к redis
var ErrStore = errors.New("ratelimit: store error")
