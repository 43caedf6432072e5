// Package inspect renders actor definitions for humans and tools: Summary
// produces a compact overview for debugging, RenderDSL produces canonical
// DSL text that parses back to an equivalent definition.
package inspect

import (
	"fmt"
	"strings"

	"github.com/stagehand-xyz/go-stagehand/model"
)

// Summary returns a multi-line overview of the definition: name, visibility,
// message variants with payload shapes, state fields, declared hooks, and
// loop configuration.
func Summary(def *model.Definition) string {
	var b strings.Builder

	vis := "private"
	if def.Public {
		vis = "public"
	}
	fmt.Fprintf(&b, "actor %s (%s)\n", def.Name, vis)
	for _, doc := range def.Docs {
		fmt.Fprintf(&b, "  /// %s\n", doc)
	}

	if len(def.Messages) > 0 {
		fmt.Fprintf(&b, "  input (%d variants", len(def.Messages))
		if len(def.MessageDerive) > 0 {
			fmt.Fprintf(&b, ", derive %s", strings.Join(def.MessageDerive, " "))
		}
		b.WriteString(")\n")
		for _, m := range def.Messages {
			h, handled := def.HandlerFor(m.Name)
			how := "unhandled"
			if handled {
				how = "handled"
				if h.CatchAll {
					how = "handled (catch-all)"
				}
			}
			fmt.Fprintf(&b, "    %s: %s\n", variantSignature(m), how)
		}
	}

	if len(def.Fields) > 0 {
		fmt.Fprintf(&b, "  data (%d fields)\n", len(def.Fields))
		for _, f := range def.Fields {
			pub := ""
			if f.Pub {
				pub = "pub "
			}
			fmt.Fprintf(&b, "    %s%s: %s\n", pub, f.Name, f.Type)
		}
	}

	var hooks []string
	if def.OnInit != "" {
		hooks = append(hooks, "on_init")
	}
	if def.OnTick != "" {
		hooks = append(hooks, "on_tick")
	}
	if def.OnStop != "" {
		hooks = append(hooks, "on_stop")
	}
	if len(hooks) > 0 {
		fmt.Fprintf(&b, "  hooks: %s\n", strings.Join(hooks, ", "))
	}

	fmt.Fprintf(&b, "  tick_interval: %dms\n", def.TickInterval)
	fmt.Fprintf(&b, "  spawner: %s -> %s\n", def.Spawner, def.SpawnerReturnType)
	return b.String()
}

func variantSignature(m model.Message) string {
	if len(m.Payload) == 0 {
		return m.Name
	}
	parts := make([]string, len(m.Payload))
	for i, p := range m.Payload {
		parts[i] = p.Name + " " + p.Type
	}
	return m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// RenderDSL converts a definition back to DSL text. Rendering a compiled
// definition and compiling the result yields an equivalent definition;
// verbatim code blocks keep their content, not their original indentation.
func RenderDSL(def *model.Definition) string {
	var b strings.Builder
	b.WriteString(def.Name)
	b.WriteString("\n")

	if len(def.Docs) > 0 {
		b.WriteString("\ndocs:\n")
		for _, doc := range def.Docs {
			fmt.Fprintf(&b, "    /// %s\n", doc)
		}
	}

	if def.Public {
		b.WriteString("\npublic_visibility: true\n")
	}

	if len(def.Imports) > 0 {
		b.WriteString("\nimports:\n")
		for _, imp := range def.Imports {
			fmt.Fprintf(&b, "    %q,\n", imp)
		}
	}

	if len(def.Messages) > 0 {
		b.WriteString("\ninput:\n")
		for _, m := range def.Messages {
			fmt.Fprintf(&b, "    %s,\n", variantSignature(m))
		}
	}

	if len(def.MessageDerive) > 0 {
		fmt.Fprintf(&b, "\ninput_derive: %s,\n", strings.Join(def.MessageDerive, ", "))
	}

	if len(def.Fields) > 0 {
		b.WriteString("\ndata:\n")
		for _, f := range def.Fields {
			pub := ""
			if f.Pub {
				pub = "pub "
			}
			fmt.Fprintf(&b, "    %s%s: %s,\n", pub, f.Name, f.Type)
		}
	}

	writeCodeSection(&b, "on_init", def.OnInit)

	if len(def.Handlers) > 0 {
		b.WriteString("\non_message:\n")
		for i, h := range def.Handlers {
			pattern := "_"
			if !h.CatchAll {
				pattern = h.Variant
				if len(h.Binds) > 0 {
					pattern += "(" + strings.Join(h.Binds, ", ") + ")"
				}
			}
			fmt.Fprintf(&b, "    %s => {\n", pattern)
			writeBlockBody(&b, h.Body, "        ")
			b.WriteString("    }")
			if i < len(def.Handlers)-1 {
				b.WriteString(",")
			} else {
				b.WriteString(";")
			}
			b.WriteString("\n")
		}
	}

	if def.TickInterval != model.DefaultTickInterval {
		fmt.Fprintf(&b, "\ntick_interval: %d\n", def.TickInterval)
	}

	writeCodeSection(&b, "on_tick", def.OnTick)
	writeCodeSection(&b, "on_stop", def.OnStop)

	if def.Spawner != model.DefaultSpawner {
		fmt.Fprintf(&b, "\nspawner: %s\n", def.Spawner)
	}
	if def.SpawnerReturnType != model.DefaultSpawnerReturnType {
		fmt.Fprintf(&b, "\nspawner_return_type: %s\n", def.SpawnerReturnType)
	}

	writeCodeSection(&b, "custom_code", def.CustomCode)
	return b.String()
}

func writeCodeSection(b *strings.Builder, keyword, code string) {
	if code == "" {
		return
	}
	fmt.Fprintf(b, "\n%s: {\n", keyword)
	writeBlockBody(b, code, "    ")
	b.WriteString("};\n")
}

// writeBlockBody re-indents a verbatim block: the common leading whitespace
// is replaced with indent, deeper nesting is preserved.
func writeBlockBody(b *strings.Builder, code, indent string) {
	lines := strings.Split(strings.Trim(code, "\n"), "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common < 0 {
		common = 0
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indent)
		b.WriteString(line[common:])
		b.WriteString("\n")
	}
}
