package pkg

import "github.com/rs/zerolog"

// AssertNoError logs and panics on startup failures that leave the process unusable
func AssertNoError(logger zerolog.Logger, err error, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		panic(err)
	}
}
