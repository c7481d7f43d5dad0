// Golang port of postcss-mixins
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package httpUtils

import (
	"context"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// Listen opens a unix socket for addresses starting with a slash and a tcp
// listener otherwise.
func Listen(addr string) (net.Listener, error) {
	if strings.HasPrefix(addr, "/") {
		if err := os.Remove(addr); err != nil && !os.IsNotExist(err) {
			return nil, errors.Tag(err, "remove stale socket")
		}
		return net.Listen("unix", addr)
	}
	return net.Listen("tcp", addr)
}

// Serve runs handler on addr until ctx is done.
func Serve(ctx context.Context, handler http.Handler, addr string) error {
	l, err := Listen(addr)
	if err != nil {
		return errors.Tag(err, "listen on "+addr)
	}
	server := http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = server.Shutdown(sCtx)
	}()
	if err = server.Serve(l); err != nil && err != http.ErrServerClosed {
		return errors.Tag(err, "serve")
	}
	return nil
}
