// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package element

import (
	"github.com/google/uuid"

	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/router"
)

// Mux merges N input ports onto a single output port. It owns no
// notifier of its own; a search landing on its output port is simply
// forwarded to every input, so an upstream search through a Mux combines
// the EMPTY signals of whatever feeds each input - this is how two
// independent empty queues end up OR'd together by an unmodified search.
type Mux struct {
	id     router.ElementID
	name   string
	inputs int
}

// NewMux constructs a Mux with the given number of input ports.
func NewMux(name string, inputs int) *Mux {
	return &Mux{id: uuid.New(), name: name, inputs: inputs}
}

func (m *Mux) ID() router.ElementID { return m.id }
func (m *Mux) Name() string         { return m.name }

func (m *Mux) Cast(string) notifier.Notifier { return nil }

// PortActive reports every input as pull (the Mux pulls from whichever
// input is ready) and the output as pull too.
func (m *Mux) PortActive(bool, int) bool { return false }

// PortFlow reports the output port as reachable from every input port,
// and each input port as reaching only the output port.
func (m *Mux) PortFlow(isOutput bool, port int) []bool {
	if isOutput && port == 0 {
		flow := make([]bool, m.inputs)
		for i := range flow {
			flow[i] = true
		}
		return flow
	}
	if !isOutput && port < m.inputs {
		return []bool{true}
	}
	return nil
}

var _ router.Element = (*Mux)(nil)
