// File: loop/logger.go
// Author: momentics <momentics@gmail.com>

package loop

import (
	"os"

	"github.com/zbh255/bilog"
)

var logger bilog.Logger = bilog.NewLogger(os.Stderr, bilog.ERROR, bilog.WithTimes(), bilog.WithCaller())
