/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package grpcx

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/traits"
)

// Metadata keys set on the errdetails.ErrorInfo attached to statuses.
const (
	MetaShape    = "shape"
	MetaGRPCCode = "grpc_code"
)

// ShapedError is an application error that instantiates an error shape of
// the model.
type ShapedError interface {
	error
	// ErrorShape returns the id of the error structure.
	ErrorShape() model.ShapeID
	// ErrorMember returns the value of a member of that structure.
	ErrorMember(name string) (string, bool)
}

// binding is what the resolver knows about one error shape.
type binding struct {
	trait *traits.ErrorTrait
	// messageMember is the member marked grpcErrorMessage, if any.
	messageMember string
}

// Resolver maps shaped errors to gRPC statuses using the grpcError and
// grpcErrorMessage traits of a model. It is immutable and safe for
// concurrent use.
type Resolver struct {
	bindings map[model.ShapeID]binding
}

// NewResolver indexes every shape of m that carries a grpcError trait.
func NewResolver(m *model.Model) *Resolver {
	r := &Resolver{bindings: make(map[model.ShapeID]binding)}
	for _, s := range m.ShapesWithTrait(traits.ErrorTraitID) {
		t, ok := model.TraitAs[*traits.ErrorTrait](s, traits.ErrorTraitID)
		if !ok {
			continue
		}
		b := binding{trait: t}
		if id, ok := MessageMember(m, s.ID()); ok {
			b.messageMember = id.Member
		}
		r.bindings[s.ID()] = b
	}
	return r
}

// MessageMember returns the member of container marked grpcErrorMessage.
// When a (invalid) model marks several, the first in id order wins.
func MessageMember(m *model.Model, container model.ShapeID) (model.ShapeID, bool) {
	var found []model.ShapeID
	for _, s := range m.Members(container) {
		if s.HasTrait(traits.ErrorMessageTraitID) {
			found = append(found, s.ID())
		}
	}
	if len(found) == 0 {
		return model.ShapeID{}, false
	}
	first := found[0]
	for _, id := range found[1:] {
		if id.Compare(first) < 0 {
			first = id
		}
	}
	return first, true
}

// Status converts err into a gRPC status. It returns false when err does not
// wrap a ShapedError whose shape carries a grpcError trait.
//
// The status message is, in order of preference: the value of the member
// marked grpcErrorMessage, the trait's message, err.Error(). Non-standard
// codes and OK are sent as UNKNOWN; the original value is kept in the
// ErrorInfo metadata.
func (r *Resolver) Status(err error) (*gstatus.Status, bool) {
	var se ShapedError
	if !errors.As(err, &se) {
		return nil, false
	}
	b, ok := r.bindings[se.ErrorShape()]
	if !ok {
		return nil, false
	}

	msg := se.Error()
	if m, ok := b.trait.Message(); ok && m != "" {
		msg = m
	}
	if b.messageMember != "" {
		if v, ok := se.ErrorMember(b.messageMember); ok && v != "" {
			msg = v
		}
	}

	id := se.ErrorShape()
	code := b.trait.Code().GRPC()
	if code == codes.OK {
		code = codes.Unknown
	}
	base := gstatus.New(code, msg)
	info := &errdetails.ErrorInfo{
		Reason: id.Name,
		Domain: id.Namespace,
		Metadata: map[string]string{
			MetaShape:    id.String(),
			MetaGRPCCode: strconv.Itoa(int(b.trait.Code())),
		},
	}
	// If attaching details fails, the bare status is still meaningful.
	if with, err := base.WithDetails(info); err == nil {
		return with, true
	}
	return base, true
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// handler errors wrapping a ShapedError to statuses built by r. Other errors
// are returned as-is.
func UnaryServerInterceptor(r *Resolver, logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, r.convert(err, info.FullMethod, logger)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(r *Resolver, logger *zap.Logger) grpc.StreamServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return r.convert(err, info.FullMethod, logger)
	}
}

func (r *Resolver) convert(err error, method string, logger *zap.Logger) error {
	st, ok := r.Status(err)
	if !ok {
		return err
	}
	logger.Debug("mapped shaped error",
		zap.String("method", method),
		zap.Stringer("code", st.Code()),
		zap.Error(err),
	)
	return st.Err()
}

// ExtractErrorInfo pulls the ErrorInfo detail out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}
