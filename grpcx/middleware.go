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
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// ZapLogger adapts logger to the go-grpc-middleware logging interface.
// Fields arrive as alternating key/value pairs.
func ZapLogger(logger *zap.Logger) logging.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		zf := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				key = fmt.Sprint(fields[i])
			}
			zf = append(zf, zap.Any(key, fields[i+1]))
		}
		switch lvl {
		case logging.LevelDebug:
			logger.Debug(msg, zf...)
		case logging.LevelInfo:
			logger.Info(msg, zf...)
		case logging.LevelWarn:
			logger.Warn(msg, zf...)
		default:
			logger.Error(msg, zf...)
		}
	})
}

// ServerOptions returns the interceptor chains for a server whose handlers
// return shaped errors: call logging outermost, then shaped error mapping,
// then panic recovery.
func ServerOptions(r *Resolver, logger *zap.Logger) []grpc.ServerOption {
	l := ZapLogger(logger)
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(l),
			UnaryServerInterceptor(r, logger),
			recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(l),
			StreamServerInterceptor(r, logger),
			recovery.StreamServerInterceptor(),
		),
	}
}
