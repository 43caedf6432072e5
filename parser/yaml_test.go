package parser

import (
	"testing"

	"github.com/stagehand-xyz/go-stagehand/model"
)

func TestFromYAML_Simple(t *testing.T) {
	yamlData := `
name: Logger
messages:
  - name: Write
    payload:
      - name: line
        type: string
  - name: Rotate
on_message:
  - variant: Write
    binds: [line]
    body: "self.lines = append(self.lines, line)"
  - catch_all: true
    body: "self.lines = nil"
fields:
  - name: lines
    type: "[]string"
`
	def, err := FromYAML([]byte(yamlData))
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}

	if def.Name != "Logger" {
		t.Errorf("expected name Logger, got %q", def.Name)
	}
	if len(def.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(def.Messages))
	}
	h, ok := def.HandlerFor("Rotate")
	if !ok || !h.CatchAll {
		t.Errorf("Rotate should fall to the catch-all arm, got %+v", h)
	}
	if def.TickInterval != model.DefaultTickInterval {
		t.Errorf("expected default tick interval, got %d", def.TickInterval)
	}
}

func TestFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "name: [unclosed"},
		{"missing name", "public: true"},
		{"negative tick", "name: A\ntick_interval: -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromYAML([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	def1 := model.New("Poller").
		Field("hits", "int").
		OnTick("self.hits++").
		TickInterval(10).
		MustDefinition()

	data, err := ToYAML(def1)
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}
	def2, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}
	if def2.Name != def1.Name || def2.TickInterval != def1.TickInterval || def2.OnTick != def1.OnTick {
		t.Errorf("round trip changed definition: %+v", def2)
	}
}
