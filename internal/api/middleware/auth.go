package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/api/metrics"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

// principalKey is the echo context key the authenticated principal is stored
// under for the duration of one request.
const principalKey = "auth.principal"

// Auth extracts and verifies the bearer token and stores the resulting
// principal in the request context. The exact verification failure is logged;
// the caller only ever sees a single unauthenticated outcome, mapped by the
// central error handler.
func Auth(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("absent").Inc()
				return domain.ErrTokenAbsent
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("absent").Inc()
				return domain.ErrTokenAbsent
			}

			principal, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				log.Debug().Err(err).
					Str("path", c.Path()).
					Msg("token verification failed")
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal the Auth middleware established for
// this request.
func CurrentPrincipal(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(principalKey).(domain.Principal)
	return principal, ok
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}
