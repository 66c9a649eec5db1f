// Package extmsg answers out-of-band queries from other parts of the
// extension surface. Exactly one query type is understood; anything else
// is ignored without a response.
package extmsg

import (
	"encoding/json"

	"github.com/theopenlane/ecolens/internal/page"
)

// actionGetProductData is the single recognized query action
const actionGetProductData = "getProductData"

// query is the inbound message envelope
type query struct {
	// Action identifies the requested operation
	Action string `json:"action"`
}

// productDataReply reports whether the page currently shows eco data
type productDataReply struct {
	// HasData is true when an overlay is present on the page
	HasData bool `json:"hasData"`
}

// Responder answers queries against the current page state. It is
// stateless and synchronous.
type Responder struct {
	doc page.Page
}

// New creates a responder bound to the given page
func New(doc page.Page) (*Responder, error) {
	if doc == nil {
		return nil, ErrMissingPage
	}

	return &Responder{doc: doc}, nil
}

// Handle decodes a raw inbound message and returns the encoded response.
// The second return value is false when no response should be sent:
// unrecognized actions and undecodable payloads are ignored.
func (r *Responder) Handle(raw []byte) ([]byte, bool) {
	var q query
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, false
	}

	if q.Action != actionGetProductData {
		return nil, false
	}

	reply, err := json.Marshal(productDataReply{HasData: page.HasWidget(r.doc)})
	if err != nil {
		return nil, false
	}

	return reply, true
}
