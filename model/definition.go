// Package model defines the actor definition: the validated, immutable
// description an actor DSL source compiles into. A Definition is built once
// (from DSL text, from a structured document, or through the Builder),
// validated, and then consumed by code generation.
package model

// Default values applied to optional sections.
const (
	DefaultTickInterval      = 100 // milliseconds
	DefaultSpawner           = "runtime.GoSpawner{}"
	DefaultSpawnerReturnType = "runtime.Completion"
)

// PayloadField is one typed field of a message variant's payload.
type PayloadField struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Message is one named variant of the actor's input type.
type Message struct {
	Name    string         `json:"name" yaml:"name"`
	Payload []PayloadField `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// StateField is one persistent actor state field. Pub controls whether the
// generated struct field is exported.
type StateField struct {
	Pub  bool   `json:"pub,omitempty" yaml:"pub,omitempty"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Handler is one on_message arm: a variant pattern with positional payload
// binds, or a catch-all, paired with a verbatim code block.
type Handler struct {
	Variant  string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Binds    []string `json:"binds,omitempty" yaml:"binds,omitempty"`
	CatchAll bool     `json:"catch_all,omitempty" yaml:"catch_all,omitempty"`
	Body     string   `json:"body" yaml:"body"`
}

// Definition is the actor definition assembled from parsed sections.
// Field order follows declaration order; it is significant only for
// deterministic code generation.
type Definition struct {
	Name   string   `json:"name" yaml:"name"`
	Public bool     `json:"public,omitempty" yaml:"public,omitempty"`
	Docs   []string `json:"docs,omitempty" yaml:"docs,omitempty"`

	Imports       []string     `json:"imports,omitempty" yaml:"imports,omitempty"`
	Messages      []Message    `json:"messages,omitempty" yaml:"messages,omitempty"`
	MessageDerive []string     `json:"message_derive,omitempty" yaml:"message_derive,omitempty"`
	Fields        []StateField `json:"fields,omitempty" yaml:"fields,omitempty"`

	OnInit   string    `json:"on_init,omitempty" yaml:"on_init,omitempty"`
	Handlers []Handler `json:"on_message,omitempty" yaml:"on_message,omitempty"`
	OnTick   string    `json:"on_tick,omitempty" yaml:"on_tick,omitempty"`
	OnStop   string    `json:"on_stop,omitempty" yaml:"on_stop,omitempty"`

	// TickInterval is the dispatch loop's timeout window in milliseconds.
	TickInterval int `json:"tick_interval,omitempty" yaml:"tick_interval,omitempty"`

	Spawner           string `json:"spawner,omitempty" yaml:"spawner,omitempty"`
	SpawnerReturnType string `json:"spawner_return_type,omitempty" yaml:"spawner_return_type,omitempty"`

	CustomCode string `json:"custom_code,omitempty" yaml:"custom_code,omitempty"`
}

// ApplyDefaults fills unset optional attributes with their default values.
func (d *Definition) ApplyDefaults() {
	if d.TickInterval == 0 {
		d.TickInterval = DefaultTickInterval
	}
	if d.Spawner == "" {
		d.Spawner = DefaultSpawner
	}
	if d.SpawnerReturnType == "" {
		d.SpawnerReturnType = DefaultSpawnerReturnType
	}
}

// MessageNamed returns the message variant with the given name.
func (d *Definition) MessageNamed(name string) (Message, bool) {
	for _, m := range d.Messages {
		if m.Name == name {
			return m, true
		}
	}
	return Message{}, false
}

// HandlerFor returns the handler arm covering the given variant, falling
// back to the catch-all arm when present.
func (d *Definition) HandlerFor(variant string) (Handler, bool) {
	for _, h := range d.Handlers {
		if !h.CatchAll && h.Variant == variant {
			return h, true
		}
	}
	for _, h := range d.Handlers {
		if h.CatchAll {
			return h, true
		}
	}
	return Handler{}, false
}
