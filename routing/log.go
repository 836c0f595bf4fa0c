package routing

import "github.com/btcsuite/btclog"

// log is the package-level logger used throughout path finding. It is
// disabled by default; callers that want diagnostic output wire in a real
// backend with UseLogger, following the same pattern every lnd subsystem
// uses to obtain its logger.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-level logger used by this package. It should
// be called before GetRoute to have any effect.
func UseLogger(logger btclog.Logger) {
	log = logger
}
