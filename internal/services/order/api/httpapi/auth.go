package httpapi

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/domain"
)

type contextKey string

const ctxKeyActor contextKey = "actor"

// actorClaims is the expected bearer token payload: the account id in the
// standard subject claim plus a role claim.
type actorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthBearer validates HS256 bearer tokens and stores the actor in the
// request context. Requests without a token pass through anonymously;
// handlers that need an actor reject them.
func AuthBearer(api huma.API, secret []byte) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			next(ctx)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		actor, err := parseActorToken(secret, token)
		if err != nil {
			writeError(api, ctx, err)
			return
		}
		newCtx := context.WithValue(ctx.Context(), ctxKeyActor, actor)
		next(huma.WithContext(ctx, newCtx))
	}
}

func parseActorToken(secret []byte, token string) (domain.Actor, error) {
	claims := &actorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.CodeAuthTokenInvalid,
				"unexpected token signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Actor{}, apperrors.Wrap(apperrors.CodeAuthTokenInvalid,
			"bearer token is invalid", err)
	}
	if claims.Subject == "" {
		return domain.Actor{}, apperrors.New(apperrors.CodeAuthTokenInvalid,
			"bearer token has no subject")
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Actor{}, apperrors.New(apperrors.CodeAuthTokenInvalid,
			"bearer token has an unknown role claim")
	}
	return domain.Actor{AccountID: claims.Subject, Role: role}, nil
}

// actorFromContext returns the authenticated actor, or an unauthenticated
// error when the request carried no valid token.
func actorFromContext(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(ctxKeyActor).(domain.Actor)
	if !ok {
		return domain.Actor{}, apperrors.New(apperrors.CodeAuthTokenInvalid,
			"authentication required")
	}
	return actor, nil
}
