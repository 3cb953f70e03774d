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

package httpx

import (
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/grpctraits/grpcx"
	"dirpx.dev/grpctraits/status"
)

// Writer turns errors into HTTP responses.
type Writer struct {
	Resolver *grpcx.Resolver
}

// Write serializes err as
//
//	{"code": "NOT_FOUND", "message": "...", "shape": "ns#Name"}
//
// with the HTTP status derived from the gRPC code. Errors the resolver does
// not know are written as UNKNOWN / 500 with their Error() text.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code := status.MustResolve("UNKNOWN")
	msg := err.Error()
	fields := map[string]*structpb.Value{}
	if w.Resolver != nil {
		if st, ok := w.Resolver.Status(err); ok {
			code = status.Code(st.Code())
			msg = st.Message()
			if info, ok := grpcx.ExtractErrorInfo(st.Err()); ok {
				fields["shape"] = structpb.NewStringValue(info.GetMetadata()[grpcx.MetaShape])
			}
		}
	}
	fields["code"] = structpb.NewStringValue(code.String())
	fields["message"] = structpb.NewStringValue(msg)

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code.HTTPStatus())

	b, _ := protojson.Marshal(&structpb.Struct{Fields: fields})
	_, _ = rw.Write(b)
}
