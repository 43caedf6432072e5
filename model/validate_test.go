package model

import (
	"errors"
	"testing"
)

func validBase() *Definition {
	d := &Definition{
		Name:     "Counter",
		Messages: []Message{{Name: "Add", Payload: []PayloadField{{Name: "delta", Type: "int"}}}, {Name: "Reset"}},
		Handlers: []Handler{
			{Variant: "Add", Binds: []string{"delta"}, Body: "self.total += delta"},
			{Variant: "Reset", Body: "self.total = 0"},
		},
		Fields: []StateField{{Name: "total", Type: "int"}},
	}
	d.ApplyDefaults()
	return d
}

func TestValidateAccepts(t *testing.T) {
	if err := validBase().Validate(); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}
}

func TestValidateCodes(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Definition)
		wantCode string
	}{
		{
			name:     "missing name",
			mutate:   func(d *Definition) { d.Name = "" },
			wantCode: CodeMissingRequiredSection,
		},
		{
			name:     "messages without handlers",
			mutate:   func(d *Definition) { d.Handlers = nil },
			wantCode: CodeMissingRequiredSection,
		},
		{
			name: "handlers without messages",
			mutate: func(d *Definition) {
				d.Messages = nil
				d.Handlers = []Handler{{CatchAll: true, Body: "_ = 0"}}
			},
			wantCode: CodeMissingRequiredSection,
		},
		{
			name:     "zero tick interval",
			mutate:   func(d *Definition) { d.TickInterval = 0 },
			wantCode: CodeNonPositiveTickInterval,
		},
		{
			name:     "negative tick interval",
			mutate:   func(d *Definition) { d.TickInterval = -100 },
			wantCode: CodeNonPositiveTickInterval,
		},
		{
			name:     "duplicate variant",
			mutate:   func(d *Definition) { d.Messages = append(d.Messages, Message{Name: "Add"}) },
			wantCode: CodeDuplicateName,
		},
		{
			name: "duplicate payload field",
			mutate: func(d *Definition) {
				d.Messages[0].Payload = append(d.Messages[0].Payload, PayloadField{Name: "delta", Type: "int"})
			},
			wantCode: CodeDuplicateName,
		},
		{
			name:     "duplicate state field",
			mutate:   func(d *Definition) { d.Fields = append(d.Fields, StateField{Name: "total", Type: "int"}) },
			wantCode: CodeDuplicateName,
		},
		{
			name: "unknown pattern variant",
			mutate: func(d *Definition) {
				d.Handlers = append(d.Handlers, Handler{Variant: "Missing", Body: "_ = 0"})
			},
			wantCode: CodeUnknownMessageVariant,
		},
		{
			name: "variant handled twice",
			mutate: func(d *Definition) {
				d.Handlers = append(d.Handlers, Handler{Variant: "Reset", Body: "_ = 0"})
			},
			wantCode: CodeDuplicateName,
		},
		{
			name: "two catch-alls",
			mutate: func(d *Definition) {
				d.Handlers = append(d.Handlers,
					Handler{CatchAll: true, Body: "_ = 0"},
					Handler{CatchAll: true, Body: "_ = 1"})
			},
			wantCode: CodeDuplicateName,
		},
		{
			name: "bind arity mismatch",
			mutate: func(d *Definition) {
				d.Handlers[0].Binds = []string{"a", "b"}
			},
			wantCode: CodePayloadMismatch,
		},
		{
			name: "unhandled variant",
			mutate: func(d *Definition) {
				d.Messages = append(d.Messages, Message{Name: "Drain"})
			},
			wantCode: CodeUnhandledMessageVariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validBase()
			tt.mutate(d)
			err := d.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s (%v)", tt.wantCode, verr.Code, verr)
			}
		})
	}
}

func TestValidateCatchAllCoversUnhandled(t *testing.T) {
	d := validBase()
	d.Messages = append(d.Messages, Message{Name: "Drain"})
	d.Handlers = append(d.Handlers, Handler{CatchAll: true, Body: "_ = 0"})
	if err := d.Validate(); err != nil {
		t.Fatalf("catch-all should cover the unhandled variant: %v", err)
	}
}

func TestValidateNoBindsPatternAllowed(t *testing.T) {
	// A pattern without binds matches a payload-carrying variant; the
	// payload is just not bound.
	d := validBase()
	d.Handlers[0].Binds = nil
	if err := d.Validate(); err != nil {
		t.Fatalf("bind-less pattern should be allowed: %v", err)
	}
}

func TestValidateEmptyActor(t *testing.T) {
	d := &Definition{Name: "Idle"}
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		t.Fatalf("actor with no messages and no handlers should be valid: %v", err)
	}
}
