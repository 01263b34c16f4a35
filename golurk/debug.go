package golurk

import "github.com/go-logr/logr"

var internalLogger = logr.Discard()

// SetInternalLogger routes all engine logging through logger. Battles are silent until this is called.
func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("golurk")
}

var (
	queueLogger    = func() logr.Logger { return internalLogger.WithName("queue") }
	dispatchLogger = func() logr.Logger { return internalLogger.WithName("dispatch") }
	damageLogger   = func() logr.Logger { return internalLogger.WithName("damage") }
	battleLogger   = func() logr.Logger { return internalLogger.WithName("battle") }
	dexLogger      = func() logr.Logger { return internalLogger.WithName("dex") }
)
