package dsl

import "github.com/stagehand-xyz/go-stagehand/model"

// ActorNode represents a parsed actor definition before defaults and
// cross-validation. Pointer fields distinguish "absent" from an explicit
// zero value.
type ActorNode struct {
	Name string

	Public       *bool
	TickInterval *int

	Docs    []string
	Imports []string

	Messages []model.Message
	Derives  []string
	Fields   []model.StateField
	Handlers []model.Handler

	OnInit     string
	OnTick     string
	OnStop     string
	CustomCode string

	Spawner           string
	SpawnerReturnType string
}
