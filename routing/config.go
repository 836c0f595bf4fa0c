package routing

import "github.com/lnroute/pathfinder/lncfg"

// experimentalCfg holds the process-wide experimental routing
// configuration, set once at startup via SetExperimentalConfig. It defaults
// to every experimental behavior being off.
var experimentalCfg lncfg.ExperimentalRouting

// SetExperimentalConfig installs the experimental routing configuration
// used by the Route Composer's rotation step (§9 open question 3). It
// mirrors the package's UseLogger setter: a single process-wide knob
// installed once during startup, not threaded through every call.
func SetExperimentalConfig(cfg lncfg.ExperimentalRouting) {
	experimentalCfg = cfg
}
