// File: threadpool/logger.go
// Author: momentics <momentics@gmail.com>
//
// Package-level structured logger, grounded on the logging idiom used
// throughout the nyan233-ddio event_poll package.

package threadpool

import (
	"os"

	"github.com/zbh255/bilog"
)

var logger bilog.Logger = bilog.NewLogger(os.Stderr, bilog.ERROR, bilog.WithTimes(), bilog.WithCaller())
