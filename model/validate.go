package model

// Validate cross-checks the definition against the model invariants and
// returns the first violation found, or nil. Call ApplyDefaults first;
// a zero TickInterval is rejected here, not defaulted.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return validationErrorf(CodeMissingRequiredSection, "name",
			"actor definition has no name")
	}

	// input and on_message are jointly mandatory: an actor with no messages
	// is legal only when both are absent.
	if len(d.Messages) > 0 && len(d.Handlers) == 0 {
		return validationErrorf(CodeMissingRequiredSection, "on_message",
			"%d message variant(s) declared but no on_message section", len(d.Messages))
	}
	if len(d.Handlers) > 0 && len(d.Messages) == 0 {
		return validationErrorf(CodeMissingRequiredSection, "input",
			"on_message handlers declared but no input section")
	}

	if d.TickInterval <= 0 {
		return validationErrorf(CodeNonPositiveTickInterval, "tick_interval",
			"tick_interval must be a positive number of milliseconds, got %d", d.TickInterval)
	}

	seenVariants := make(map[string]bool, len(d.Messages))
	for _, m := range d.Messages {
		if seenVariants[m.Name] {
			return validationErrorf(CodeDuplicateName, m.Name,
				"message variant %q declared twice", m.Name)
		}
		seenVariants[m.Name] = true

		seenPayload := make(map[string]bool, len(m.Payload))
		for _, p := range m.Payload {
			if seenPayload[p.Name] {
				return validationErrorf(CodeDuplicateName, m.Name+"."+p.Name,
					"payload field %q declared twice in variant %q", p.Name, m.Name)
			}
			seenPayload[p.Name] = true
		}
	}

	seenFields := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if seenFields[f.Name] {
			return validationErrorf(CodeDuplicateName, f.Name,
				"state field %q declared twice", f.Name)
		}
		seenFields[f.Name] = true
	}

	// Every pattern must reference a declared variant, with matching bind
	// arity, and at most one arm (or catch-all) per variant.
	handled := make(map[string]bool, len(d.Handlers))
	catchAll := false
	for _, h := range d.Handlers {
		if h.CatchAll {
			if catchAll {
				return validationErrorf(CodeDuplicateName, "_",
					"more than one catch-all arm in on_message")
			}
			catchAll = true
			continue
		}
		m, ok := d.MessageNamed(h.Variant)
		if !ok {
			return validationErrorf(CodeUnknownMessageVariant, h.Variant,
				"on_message pattern %q does not match any declared message variant", h.Variant)
		}
		if handled[h.Variant] {
			return validationErrorf(CodeDuplicateName, h.Variant,
				"message variant %q handled twice", h.Variant)
		}
		handled[h.Variant] = true
		if len(h.Binds) > 0 && len(h.Binds) != len(m.Payload) {
			return validationErrorf(CodePayloadMismatch, h.Variant,
				"pattern %q binds %d value(s), variant carries %d payload field(s)",
				h.Variant, len(h.Binds), len(m.Payload))
		}
	}

	// Every declared variant must be handled, unless a catch-all is present.
	if !catchAll {
		for _, m := range d.Messages {
			if !handled[m.Name] {
				return validationErrorf(CodeUnhandledMessageVariant, m.Name,
					"message variant %q has no on_message arm and no catch-all is present", m.Name)
			}
		}
	}

	return nil
}
