package extmsg

import (
	"encoding/json"
	"testing"

	"github.com/theopenlane/ecolens/internal/page"
	"github.com/theopenlane/ecolens/internal/widget"
)

func TestHandle_GetProductData(t *testing.T) {
	tests := []struct {
		name    string
		state   widget.State
		hasData bool
	}{
		{"no widget", widget.Absent(), false},
		{"loading widget", widget.Loading(), true},
		{"success widget", widget.Success(widget.DisplayModel{OverallEcoScore: 85}), true},
		{"error widget", widget.Error(), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := page.NewSimPage("https://www.example.com/dp/B000123")
			doc.ReplaceWidget(tc.state)

			r, err := New(doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			raw, ok := r.Handle([]byte(`{"action":"getProductData"}`))
			if !ok {
				t.Fatal("expected a response for getProductData")
			}

			var reply struct {
				HasData bool `json:"hasData"`
			}

			if err := json.Unmarshal(raw, &reply); err != nil {
				t.Fatalf("failed to decode reply: %v", err)
			}

			if reply.HasData != tc.hasData {
				t.Errorf("expected hasData=%v, got %v", tc.hasData, reply.HasData)
			}
		})
	}
}

func TestHandle_IgnoresOtherMessages(t *testing.T) {
	doc := page.NewSimPage("https://www.example.com/dp/B000123")

	r, err := New(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"unknown action", `{"action":"refreshBadge"}`},
		{"missing action", `{"payload":42}`},
		{"not json", `getProductData`},
		{"empty", ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := r.Handle([]byte(tc.raw)); ok {
				t.Errorf("expected message %q to be ignored", tc.raw)
			}
		})
	}
}
