package grpc

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// checkPIN validates the authorization metadata against pin.
// An empty pin rejects every call.
func checkPIN(ctx context.Context, pin string) error {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing metadata")
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return status.Error(codes.Unauthenticated, "missing authorization header")
	}

	if pin == "" || subtle.ConstantTimeCompare([]byte(authHeaders[0]), []byte(pin)) != 1 {
		return status.Error(codes.Unauthenticated, "invalid pin")
	}
	return nil
}

func exemptSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[m] = true
	}
	return set
}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the access PIN from the authorization metadata.
// Methods listed in exempt skip the check.
func AuthInterceptor(pin string, exempt ...string) grpc.UnaryServerInterceptor {
	skip := exemptSet(exempt)
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if !skip[info.FullMethod] {
			if err := checkPIN(ctx, pin); err != nil {
				return nil, err
			}
		}
		return handler(ctx, req)
	}
}

// StreamAuthInterceptor is the streaming counterpart of AuthInterceptor
func StreamAuthInterceptor(pin string, exempt ...string) grpc.StreamServerInterceptor {
	skip := exemptSet(exempt)
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if !skip[info.FullMethod] {
			if err := checkPIN(ss.Context(), pin); err != nil {
				return err
			}
		}
		return handler(srv, ss)
	}
}
