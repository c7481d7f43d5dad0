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
	"encoding/json"
	"net/http"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// BuildNotification describes a finished build of one bundle.
type BuildNotification struct {
	Name     string       `json:"name"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`

	// Stylesheets lists the css outputs that changed with this build,
	// relative to the output directory.
	Stylesheets []string `json:"stylesheets"`
}

type Diagnostic struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Text   string `json:"text"`
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return d.Text
	}
	return (&errors.SyntaxError{
		File:   d.File,
		Line:   d.Line,
		Column: d.Column,
		Msg:    d.Text,
	}).Error()
}

func toDiagnostics(msgs []api.Message) []Diagnostic {
	out := make([]Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := Diagnostic{Text: m.Text}
		if l := m.Location; l != nil {
			d.File = l.File
			d.Line = l.Line
			d.Column = l.Column + 1
		}
		out = append(out, d)
	}
	return out
}

func newNotification(name string) BuildNotification {
	return BuildNotification{
		Name:        name,
		Errors:      []Diagnostic{},
		Warnings:    []Diagnostic{},
		Stylesheets: []string{},
	}
}

// AddListener registers c for notifications about finished builds. The
// returned function unregisters and drains c.
func (o *outputCollector) AddListener(c chan BuildNotification) func() {
	o.mu.Lock()
	o.listeners[c] = true
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.listeners, c)
		o.mu.Unlock()
		close(c)
		for range c {
		}
	}
}

func (o *outputCollector) notify(n BuildNotification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for c := range o.listeners {
		select {
		case c <- n:
		default:
			// Slow listener, it will pick up the next build.
		}
	}
}

// stream forwards notifications to send, starting with an empty one, until
// the client disconnects or send fails.
func (b *Builder) stream(disconnected <-chan struct{}, send func(n BuildNotification) error) error {
	c := make(chan BuildNotification, 10)
	defer b.out.AddListener(c)()
	c <- newNotification("initial")
	for {
		select {
		case <-disconnected:
			return nil
		case n := <-c:
			if err := send(n); err != nil {
				return err
			}
		}
	}
}

func (b *Builder) handleEventSource(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := b.stream(r.Context().Done(), func(n BuildNotification) error {
		blob, err := json.Marshal(n)
		if err != nil {
			return err
		}
		if _, err = w.Write([]byte("event: rebuild\ndata: ")); err != nil {
			return err
		}
		if _, err = w.Write(append(blob, '\n', '\n')); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && r.Context().Err() == nil {
		b.logger.Warn("event-source: send", "err", err)
	}
}

func (b *Builder) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// A 4xx has been generated already.
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err2 := conn.NextReader(); err2 != nil {
				return
			}
		}
	}()

	err = b.stream(disconnected, func(n BuildNotification) error {
		_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
		return conn.WriteJSON(n)
	})
	if err != nil {
		b.logger.Debug("ws: send", "err", err)
	}
}
