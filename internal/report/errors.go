package report

import "errors"

var (
	ErrDispatcherAlreadyRunning = errors.New("dispatcher is already running")
	ErrDispatcherNotRunning     = errors.New("dispatcher is not running")
	ErrNilSink                  = errors.New("dispatcher sink is nil")
)
