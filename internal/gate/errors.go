package gate

import "errors"

// Gate misuse error types. These all indicate coordinator-side contract
// violations, not runtime conditions a session can recover from.
var (
	ErrInvalidPopulation  = errors.New("gate population must be positive")
	ErrGateNotReady       = errors.New("gate released before all participants arrived")
	ErrGateOverReleased   = errors.New("gate released more permits than the population")
	ErrGateOverSubscribed = errors.New("more participants arrived than the gate population")
)
