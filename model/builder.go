package model

// Builder provides a fluent API for constructing actor definitions without
// DSL text. Both paths produce identical definitions; the builder is the
// programmatic route for tools that already hold a structured description.
type Builder struct {
	def *Definition

	// Track current element for modifier methods
	currentMessage *Message
	currentField   *StateField
}

// New creates a definition builder for an actor with the given name.
func New(name string) *Builder {
	return &Builder{
		def: &Definition{
			Name: name,
		},
	}
}

// Public marks the generated surface as exported.
func (b *Builder) Public() *Builder {
	b.def.Public = true
	return b
}

// Doc appends one doc-comment line attached to the generated module.
func (b *Builder) Doc(line string) *Builder {
	b.clearCurrent()
	b.def.Docs = append(b.def.Docs, line)
	return b
}

// Import adds an import path required by verbatim code blocks.
func (b *Builder) Import(path string) *Builder {
	b.clearCurrent()
	b.def.Imports = append(b.def.Imports, path)
	return b
}

// Message adds a message variant with the given name.
// Use Payload() to attach typed payload fields.
func (b *Builder) Message(name string) *Builder {
	b.clearCurrent()
	b.def.Messages = append(b.def.Messages, Message{Name: name})
	b.currentMessage = &b.def.Messages[len(b.def.Messages)-1]
	return b
}

// Payload adds a typed payload field to the current message variant.
// Must be called after Message().
func (b *Builder) Payload(name, typ string) *Builder {
	if b.currentMessage != nil {
		b.currentMessage.Payload = append(b.currentMessage.Payload, PayloadField{Name: name, Type: typ})
	}
	return b
}

// Derive adds trait names attached to the generated message type.
func (b *Builder) Derive(names ...string) *Builder {
	b.clearCurrent()
	b.def.MessageDerive = append(b.def.MessageDerive, names...)
	return b
}

// Field adds a persistent state field with the given name and type.
func (b *Builder) Field(name, typ string) *Builder {
	b.clearCurrent()
	b.def.Fields = append(b.def.Fields, StateField{Name: name, Type: typ})
	b.currentField = &b.def.Fields[len(b.def.Fields)-1]
	return b
}

// Pub marks the current state field as exported.
// Must be called after Field().
func (b *Builder) Pub() *Builder {
	if b.currentField != nil {
		b.currentField.Pub = true
	}
	return b
}

// OnInit sets the verbatim code block executed before message processing.
func (b *Builder) OnInit(code string) *Builder {
	b.clearCurrent()
	b.def.OnInit = code
	return b
}

// On adds an on_message arm for the named variant. Binds are positional
// names for the variant's payload fields, visible in the body.
func (b *Builder) On(variant, body string, binds ...string) *Builder {
	b.clearCurrent()
	b.def.Handlers = append(b.def.Handlers, Handler{Variant: variant, Binds: binds, Body: body})
	return b
}

// OnAny adds a catch-all arm covering every otherwise unhandled variant.
func (b *Builder) OnAny(body string) *Builder {
	b.clearCurrent()
	b.def.Handlers = append(b.def.Handlers, Handler{CatchAll: true, Body: body})
	return b
}

// TickInterval sets the dispatch loop timeout window in milliseconds.
func (b *Builder) TickInterval(ms int) *Builder {
	b.clearCurrent()
	b.def.TickInterval = ms
	return b
}

// OnTick sets the verbatim code block executed on a message-less timeout.
func (b *Builder) OnTick(code string) *Builder {
	b.clearCurrent()
	b.def.OnTick = code
	return b
}

// OnStop sets the verbatim code block executed after the loop drains.
func (b *Builder) OnStop(code string) *Builder {
	b.clearCurrent()
	b.def.OnStop = code
	return b
}

// Spawner sets the expression providing the execution-unit spawner.
func (b *Builder) Spawner(expr string) *Builder {
	b.clearCurrent()
	b.def.Spawner = expr
	return b
}

// SpawnerReturnType sets the concrete completion type of the spawner.
func (b *Builder) SpawnerReturnType(typ string) *Builder {
	b.clearCurrent()
	b.def.SpawnerReturnType = typ
	return b
}

// CustomCode sets declarations inserted verbatim into the generated scope.
func (b *Builder) CustomCode(code string) *Builder {
	b.clearCurrent()
	b.def.CustomCode = code
	return b
}

// clearCurrent clears the current element pointers.
// Called when starting a new element.
func (b *Builder) clearCurrent() {
	b.currentMessage = nil
	b.currentField = nil
}

// Definition applies defaults, validates, and returns the definition.
func (b *Builder) Definition() (*Definition, error) {
	def := *b.def
	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// MustDefinition is like Definition but panics on a validation error.
func (b *Builder) MustDefinition() *Definition {
	def, err := b.Definition()
	if err != nil {
		panic(err)
	}
	return def
}
