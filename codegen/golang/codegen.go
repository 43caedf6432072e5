// Package golang generates Go source for an actor definition: the message
// type, the state container, the handle, and a spawn entry point wired to
// the runtime dispatch loop. Generation is deterministic: the same
// definition always yields byte-identical output.
package golang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stagehand-xyz/go-stagehand/model"
)

const runtimeImport = "github.com/stagehand-xyz/go-stagehand/runtime"

// Generate emits the actor module for def into the named package.
// The definition must already be validated.
func Generate(def *model.Definition, pkg string) (string, error) {
	if pkg == "" {
		return "", fmt.Errorf("codegen: package name is empty")
	}
	g := &generator{def: def, pkg: pkg}
	return g.generate(), nil
}

type generator struct {
	def *model.Definition
	pkg string
	b   strings.Builder
}

// prefix is the actor's identifier prefix; public_visibility controls its
// exported casing and with it the whole generated surface.
func (g *generator) prefix() string {
	if g.def.Public {
		return upperFirst(g.def.Name)
	}
	return lowerFirst(g.def.Name)
}

func (g *generator) inputType() string  { return g.prefix() + "Input" }
func (g *generator) handleType() string { return g.prefix() + "Handle" }

func (g *generator) markerMethod() string {
	return "is" + upperFirst(g.def.Name) + "Input"
}

func (g *generator) variantType(name string) string {
	return g.prefix() + upperFirst(name)
}

func (g *generator) fieldName(f model.StateField) string {
	if f.Pub {
		return upperFirst(f.Name)
	}
	return lowerFirst(f.Name)
}

func (g *generator) hasDerive(name string) bool {
	for _, d := range g.def.MessageDerive {
		if d == name {
			return true
		}
	}
	return false
}

func (g *generator) generate() string {
	g.line("// Code generated by stagehand. DO NOT EDIT.")
	g.line("")
	g.linef("package %s", g.pkg)
	g.line("")
	g.writeImports()
	g.writeCustomCode()
	g.writeInputType()
	g.writeState()
	g.writeHandle()
	g.writeStart()
	return g.b.String()
}

func (g *generator) line(s string) { g.b.WriteString(s); g.b.WriteByte('\n') }

func (g *generator) linef(format string, args ...any) { fmt.Fprintf(&g.b, format+"\n", args...) }

// block writes verbatim user code, dedented and re-indented.
func (g *generator) block(indent, code string) {
	if strings.TrimSpace(code) == "" {
		return
	}
	for _, line := range dedent(strings.Trim(code, "\n")) {
		if strings.TrimSpace(line) == "" {
			g.line("")
			continue
		}
		g.line(indent + line)
	}
}

func (g *generator) writeImports() {
	stdlib := map[string]bool{"time": true}
	other := map[string]bool{runtimeImport: true}

	if g.hasDerive("Stringer") {
		for _, m := range g.def.Messages {
			if len(m.Payload) > 0 {
				stdlib["fmt"] = true
			}
		}
	}
	for _, d := range g.def.MessageDerive {
		// Qualified derives assert interface conformance; single-segment
		// package prefixes resolve to standard library imports.
		if i := strings.LastIndex(d, "."); i > 0 {
			path := d[:i]
			if strings.Contains(path, "/") {
				other[path] = true
			} else {
				stdlib[path] = true
			}
		}
	}
	for _, imp := range g.def.Imports {
		if strings.Contains(imp, ".") {
			other[imp] = true
		} else {
			stdlib[imp] = true
		}
	}

	g.line("import (")
	for _, p := range sortedKeys(stdlib) {
		g.linef("\t%q", p)
	}
	g.line("")
	for _, p := range sortedKeys(other) {
		g.linef("\t%q", p)
	}
	g.line(")")
	g.line("")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (g *generator) writeCustomCode() {
	if g.def.CustomCode == "" {
		return
	}
	g.block("", g.def.CustomCode)
	g.line("")
}

func (g *generator) writeInputType() {
	g.linef("// %s is the message type accepted by %s actors.", g.inputType(), g.def.Name)
	g.linef("type %s interface {", g.inputType())
	g.linef("\t%s()", g.markerMethod())
	g.line("}")
	g.line("")

	for _, m := range g.def.Messages {
		vt := g.variantType(m.Name)
		if len(m.Payload) == 0 {
			g.linef("type %s struct{}", vt)
		} else {
			g.linef("type %s struct {", vt)
			for _, p := range m.Payload {
				if g.hasDerive("JSON") {
					g.linef("\t%s %s `json:%q`", upperFirst(p.Name), p.Type, p.Name)
				} else {
					g.linef("\t%s %s", upperFirst(p.Name), p.Type)
				}
			}
			g.line("}")
		}
		g.line("")
		g.linef("func (%s) %s() {}", vt, g.markerMethod())
		g.line("")
	}

	if g.hasDerive("Stringer") {
		for _, m := range g.def.Messages {
			vt := g.variantType(m.Name)
			if len(m.Payload) == 0 {
				g.linef("func (%s) String() string { return %q }", vt, m.Name)
			} else {
				args := make([]string, len(m.Payload))
				verbs := make([]string, len(m.Payload))
				for i, p := range m.Payload {
					args[i] = "v." + upperFirst(p.Name)
					verbs[i] = "%v"
				}
				g.linef("func (v %s) String() string {", vt)
				g.linef("\treturn fmt.Sprintf(%q, %s)",
					m.Name+"("+strings.Join(verbs, ", ")+")", strings.Join(args, ", "))
				g.line("}")
			}
			g.line("")
		}
	}

	var asserts []string
	for _, d := range g.def.MessageDerive {
		if !strings.Contains(d, ".") {
			continue
		}
		for _, m := range g.def.Messages {
			asserts = append(asserts, fmt.Sprintf("_ %s = %s{}", d, g.variantType(m.Name)))
		}
	}
	if len(asserts) > 0 {
		g.line("var (")
		for _, a := range asserts {
			g.linef("\t%s", a)
		}
		g.line(")")
		g.line("")
	}
}

func (g *generator) writeState() {
	for _, doc := range g.def.Docs {
		g.linef("// %s", doc)
	}
	if len(g.def.Docs) == 0 {
		g.linef("// %s holds the persistent state of one actor instance,", g.prefix())
		g.line("// supplied in full at construction time.")
	}
	if len(g.def.Fields) == 0 {
		g.linef("type %s struct{}", g.prefix())
	} else {
		g.linef("type %s struct {", g.prefix())
		for _, f := range g.def.Fields {
			g.linef("\t%s %s", g.fieldName(f), f.Type)
		}
		g.line("}")
	}
	g.line("")

	ctor := "New" + upperFirst(g.def.Name)
	if !g.def.Public {
		ctor = "new" + upperFirst(g.def.Name)
	}
	params := make([]string, len(g.def.Fields))
	assigns := make([]string, len(g.def.Fields))
	for i, f := range g.def.Fields {
		params[i] = fmt.Sprintf("%s %s", lowerFirst(f.Name), f.Type)
		assigns[i] = fmt.Sprintf("%s: %s", g.fieldName(f), lowerFirst(f.Name))
	}
	g.linef("// %s builds the actor's construction-time state in declaration order.", ctor)
	g.linef("func %s(%s) %s {", ctor, strings.Join(params, ", "), g.prefix())
	if len(assigns) == 0 {
		g.linef("\treturn %s{}", g.prefix())
	} else {
		g.linef("\treturn %s{%s}", g.prefix(), strings.Join(assigns, ", "))
	}
	g.line("}")
	g.line("")
}

func (g *generator) writeHandle() {
	ht := g.handleType()
	g.linef("// %s sends messages to, and requests shutdown of, a running", ht)
	g.linef("// %s actor.", g.def.Name)
	g.linef("type %s struct {", ht)
	g.linef("\th *runtime.Handle[%s]", g.inputType())
	g.line("}")
	g.line("")
	g.line("// Send enqueues a message without blocking. It fails with")
	g.line("// runtime.ErrChannelClosed once the actor's loop has exited.")
	g.linef("func (h *%s) Send(msg %s) error { return h.h.Send(msg) }", ht, g.inputType())
	g.line("")
	g.line("// Stop requests graceful shutdown and blocks until the actor has fully")
	g.line("// terminated, its stop code included.")
	g.linef("func (h *%s) Stop() { h.h.Stop() }", ht)
	g.line("")
	g.line("// Unit returns the completion token of the backing execution unit.")
	if g.def.SpawnerReturnType == model.DefaultSpawnerReturnType {
		g.linef("func (h *%s) Unit() runtime.Completion { return h.h.Completion() }", ht)
	} else {
		g.linef("func (h *%s) Unit() %s {", ht, g.def.SpawnerReturnType)
		g.linef("\treturn h.h.Completion().(%s)", g.def.SpawnerReturnType)
		g.line("}")
	}
	g.line("")
}

func (g *generator) writeStart() {
	prefix := g.prefix()
	in := g.inputType()
	ht := g.handleType()

	g.line("// Start spawns the actor and returns its handle. Init code runs")
	g.line("// asynchronously on the backing execution unit; Start does not wait")
	g.line("// for it.")
	g.linef("func (a %s) Start() (*%s, error) {", prefix, ht)
	g.line("\treturn a.StartWith(runtime.Options{})")
	g.line("}")
	g.line("")
	g.line("// StartWith spawns the actor with caller overrides for mailbox size,")
	g.line("// logging, and tracing. Declared tick interval and spawner are applied")
	g.line("// when the caller leaves them unset.")
	g.linef("func (a %s) StartWith(opts runtime.Options) (*%s, error) {", prefix, ht)
	g.linef("\tif opts.Name == \"\" {")
	g.linef("\t\topts.Name = %q", g.def.Name)
	g.line("\t}")
	g.line("\tif opts.TickInterval == 0 {")
	g.linef("\t\topts.TickInterval = %d * time.Millisecond", g.def.TickInterval)
	g.line("\t}")
	g.line("\tif opts.Spawner == nil {")
	g.linef("\t\topts.Spawner = %s", g.def.Spawner)
	g.line("\t}")
	g.linef("\th, err := runtime.Start[%s](opts, func(p *runtime.Proc[%s]) error {", in, in)
	g.line("\t\tself := &a")
	g.line("\t\t_ = self")
	if g.def.OnInit != "" {
		g.block("\t\t", g.def.OnInit)
	}
	g.writeRunCall()
	if g.def.OnStop != "" {
		g.block("\t\t", g.def.OnStop)
	}
	g.line("\t\treturn nil")
	g.line("\t})")
	g.line("\tif err != nil {")
	g.line("\t\treturn nil, err")
	g.line("\t}")
	g.linef("\treturn &%s{h: h}, nil", ht)
	g.line("}")
}

func (g *generator) writeRunCall() {
	in := g.inputType()
	if len(g.def.Messages) == 0 {
		g.line("\t\tp.Run(nil, func() {")
	} else {
		g.linef("\t\tp.Run(func(msg %s) {", in)
		g.writeDispatch()
		g.line("\t\t}, func() {")
	}
	if g.def.OnTick != "" {
		g.block("\t\t\t", g.def.OnTick)
	}
	g.line("\t\t})")
}

// writeDispatch emits the message switch: one case per individually handled
// variant in declaration order, catch-all variants folded into default.
func (g *generator) writeDispatch() {
	anyBinds := false
	for _, h := range g.def.Handlers {
		if len(h.Binds) > 0 {
			anyBinds = true
		}
	}
	if anyBinds {
		g.line("\t\t\tswitch m := msg.(type) {")
	} else {
		g.line("\t\t\tswitch msg.(type) {")
	}

	var catchAll *model.Handler
	for i := range g.def.Handlers {
		if g.def.Handlers[i].CatchAll {
			catchAll = &g.def.Handlers[i]
		}
	}

	for _, m := range g.def.Messages {
		var arm *model.Handler
		for i := range g.def.Handlers {
			h := &g.def.Handlers[i]
			if !h.CatchAll && h.Variant == m.Name {
				arm = h
				break
			}
		}
		if arm == nil {
			continue // covered by the catch-all
		}
		g.linef("\t\t\tcase %s:", g.variantType(m.Name))
		for i, bind := range arm.Binds {
			g.linef("\t\t\t\t%s := m.%s", bind, upperFirst(m.Payload[i].Name))
			g.linef("\t\t\t\t_ = %s", bind)
		}
		g.block("\t\t\t\t", arm.Body)
	}

	if catchAll != nil {
		g.line("\t\t\tdefault:")
		if strings.TrimSpace(catchAll.Body) == "" {
			g.line("\t\t\t\t// ignored")
		} else {
			g.block("\t\t\t\t", catchAll.Body)
		}
	}
	g.line("\t\t\t}")
}
