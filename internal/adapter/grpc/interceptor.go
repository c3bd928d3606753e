package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/finance-dashboard/internal/adapter/auth"
)

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the bearer token from request metadata and stores its user id in the context.
// A request without a token runs as the anonymous profile unless required is set,
// in which case it fails with status.Unauthenticated. An invalid token always fails.
func AuthInterceptor(verifier auth.Verifier, required bool) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			if required {
				return nil, status.Error(codes.Unauthenticated, "missing metadata")
			}
			return handler(ctx, req)
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 || authHeaders[0] == "" {
			if required {
				return nil, status.Error(codes.Unauthenticated, "missing authorization header")
			}
			return handler(ctx, req)
		}

		if verifier == nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		userID, err := verifier.Verify(auth.BearerToken(authHeaders[0]))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) && !required {
				return handler(ctx, req)
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(auth.WithUserID(ctx, userID), req)
	}
}
