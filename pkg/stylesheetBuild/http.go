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

package stylesheetBuild

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

func (b *Builder) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/status", b.status)
	router.
		NewRoute().
		Methods(http.MethodGet).
		Path("/event-source").
		HandlerFunc(b.handleEventSource)
	router.
		NewRoute().
		Methods(http.MethodGet).
		Path("/ws").
		HandlerFunc(b.handleWebSocket)
	router.
		NewRoute().
		Methods(http.MethodGet, http.MethodHead).
		PathPrefix("/").
		HandlerFunc(b.serveOutput)
	return router
}

func (b *Builder) status(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("css-mixins is alive\n"))
}

func (b *Builder) serveOutput(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	blob, ok := b.out.Get(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		b.logger.Debug("not found", "method", r.Method, "path", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	ct := mime.TypeByExtension(path.Ext(r.URL.Path))
	if ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(blob)
}
