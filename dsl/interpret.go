package dsl

import "github.com/stagehand-xyz/go-stagehand/model"

// Interpret folds a parsed ActorNode into a validated model.Definition,
// applying defaults for every optional section. An explicitly declared
// tick_interval is never defaulted, so a declared zero still fails
// validation.
func Interpret(node *ActorNode) (*model.Definition, error) {
	def := &model.Definition{
		Name:              node.Name,
		Docs:              node.Docs,
		Imports:           node.Imports,
		Messages:          node.Messages,
		MessageDerive:     node.Derives,
		Fields:            node.Fields,
		OnInit:            node.OnInit,
		Handlers:          node.Handlers,
		OnTick:            node.OnTick,
		OnStop:            node.OnStop,
		CustomCode:        node.CustomCode,
		Spawner:           node.Spawner,
		SpawnerReturnType: node.SpawnerReturnType,
	}
	if node.Public != nil {
		def.Public = *node.Public
	}
	def.ApplyDefaults()
	if node.TickInterval != nil {
		def.TickInterval = *node.TickInterval
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Compile parses DSL text and interprets it into a validated definition.
func Compile(input string) (*model.Definition, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Interpret(node)
}
