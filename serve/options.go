package serve

import (
	"context"
	"log/slog"
	"time"

	"github.com/geozarr/toolkit/crs"
	"github.com/geozarr/toolkit/store"
	"github.com/geozarr/toolkit/validate"
)

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResolver sets the CRS authority resolver used for proj:code
// resolution.
func WithResolver(r crs.Resolver) Option {
	return func(s *Server) {
		s.validator = validate.New(validate.WithResolver(r))
	}
}

// WithStoreTimeout bounds how long opening and reading a store may take
// per request. Defaults to 30 seconds.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.storeTimeout = timeout
		}
	}
}

// WithStoreOpener replaces the store-opening function. Tests use this to
// serve fixture groups without filesystem or network access.
func WithStoreOpener(open func(ctx context.Context, url, groupPath string) (store.Group, error)) Option {
	return func(s *Server) {
		if open != nil {
			s.open = open
		}
	}
}
