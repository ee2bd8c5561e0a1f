package middleware

import (
	"context"
	"net/http"

	apperrors "tutorbook/pkg/errors"
	httputil "tutorbook/pkg/http"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const principalKey contextKey = "principal"

// Verifier turns a raw bearer token into a principal.
type Verifier interface {
	Verify(raw string) (*model.Principal, error)
}

func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*model.Principal)
	return p, ok && p != nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified principal in the request context.
func Authenticate(v Verifier, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw, err := httputil.BearerToken(r)
		if err != nil {
			_ = httputil.WriteError(w, err)
			return
		}

		principal, err := v.Verify(raw)
		if err != nil {
			_ = httputil.WriteError(w, err)
			return
		}

		next(w, r.WithContext(WithPrincipal(r.Context(), principal)), ps)
	}
}

// RequireRole lets through principals holding one of roles. It must run
// after Authenticate.
func RequireRole(next httprouter.Handle, roles ...model.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				next(w, r, ps)
				return
			}
		}

		_ = httputil.WriteError(w, apperrors.Forbidden("Insufficient role for this operation"))
	}
}

// Protect combines Authenticate and RequireRole. With no roles any verified
// principal is accepted.
func Protect(v Verifier, next httprouter.Handle, roles ...model.Role) httprouter.Handle {
	if len(roles) == 0 {
		return Authenticate(v, next)
	}
	return Authenticate(v, RequireRole(next, roles...))
}
