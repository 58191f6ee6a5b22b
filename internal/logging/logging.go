// Package logging builds the zap logger every stylus command shares.
package logging

import "go.uber.org/zap"

// New builds a production logger, or a development logger (human-readable,
// caller-annotated) when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must is New but panics on failure, for use at process startup where
// there is no sensible fallback.
func Must(verbose bool) *zap.Logger {
	l, err := New(verbose)
	if err != nil {
		panic(err)
	}
	return l
}
