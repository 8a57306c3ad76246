package bip32

import "github.com/rs/zerolog"

// log is silent until the embedding application calls UseLogger.
var log = zerolog.Nop()

// UseLogger sets the logger used by the derivation engine. Only key metadata
// is ever logged.
func UseLogger(logger zerolog.Logger) {
	log = logger.With().Str("pkg", "bip32").Logger()
}
