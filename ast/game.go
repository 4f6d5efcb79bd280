package ast

import (
	"strings"

	"github.com/questlang/questlang/internal/token"
)

// StatEntry is one "name: value" pair of a stat block.
type StatEntry struct {
	Key   *Ident
	Colon token.Position
	Value Expr
}

func (x *StatEntry) Pos() token.Position { return x.Key.Pos() }
func (x *StatEntry) End() token.Position { return x.Value.End() }
func (x *StatEntry) String() string      { return x.Key.Name + ": " + x.Value.String() }

// StatBlock is a brace-delimited, comma-separated list of stat entries.
// Duplicate names are permitted.
type StatBlock struct {
	Lbrace  token.Position
	Entries []*StatEntry
	Rbrace  token.Position
}

func (x *StatBlock) Pos() token.Position { return x.Lbrace }
func (x *StatBlock) End() token.Position { return x.Rbrace.Advance(1) }

func (x *StatBlock) String() string {
	if len(x.Entries) == 0 {
		return "{}"
	}
	entries := make([]string, 0, len(x.Entries))
	for _, e := range x.Entries {
		entries = append(entries, e.String())
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

// Lookup returns the value of the last entry named key.
func (x *StatBlock) Lookup(key string) (Expr, bool) {
	for i := len(x.Entries) - 1; i >= 0; i-- {
		if x.Entries[i].Key.Name == key {
			return x.Entries[i].Value, true
		}
	}
	return nil, false
}

// EntityDecl is implemented by the hero, enemy and item declarations.
type EntityDecl interface {
	Stmt
	Keyword() string
	Decl() *Entity
}

// Entity holds the parts shared by every entity declaration:
// keyword "name" { stats }.
type Entity struct {
	KeywordPos token.Position
	Name       *String
	Stats      *StatBlock
}

func (x *Entity) Decl() *Entity       { return x }
func (x *Entity) Pos() token.Position { return x.KeywordPos }
func (x *Entity) End() token.Position { return x.Stats.End() }

func (x *Entity) format(keyword string) string {
	return keyword + " " + x.Name.String() + " " + x.Stats.String()
}

// HeroDecl declares a hero: hero "Mira" { hp: 10 }.
type HeroDecl struct{ Entity }

func (x *HeroDecl) stmtNode()       {}
func (x *HeroDecl) Keyword() string { return "hero" }
func (x *HeroDecl) String() string  { return x.format("hero") }

// EnemyDecl declares an enemy.
type EnemyDecl struct{ Entity }

func (x *EnemyDecl) stmtNode()       {}
func (x *EnemyDecl) Keyword() string { return "enemy" }
func (x *EnemyDecl) String() string  { return x.format("enemy") }

// ItemDecl declares an item.
type ItemDecl struct{ Entity }

func (x *ItemDecl) stmtNode()       {}
func (x *ItemDecl) Keyword() string { return "item" }
func (x *ItemDecl) String() string  { return x.format("item") }

// QuestDecl is a quest: quest "name" { ... }. Items holds, in source order,
// *Phase nodes and statements.
type QuestDecl struct {
	Quest  token.Position
	Name   *String
	Lbrace token.Position
	Items  []Node
	Rbrace token.Position
}

func (x *QuestDecl) stmtNode() {}

func (x *QuestDecl) Pos() token.Position { return x.Quest }
func (x *QuestDecl) End() token.Position { return x.Rbrace.Advance(1) }

func (x *QuestDecl) String() string {
	if len(x.Items) == 0 {
		return "quest " + x.Name.String() + " {}"
	}
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	return "quest " + x.Name.String() + " { " + strings.Join(items, " ") + " }"
}

// Phases returns the quest's phases in order.
func (x *QuestDecl) Phases() []*Phase {
	var phases []*Phase
	for _, item := range x.Items {
		if p, ok := item.(*Phase); ok {
			phases = append(phases, p)
		}
	}
	return phases
}

// Phase is a named stage of a quest. Phases only appear inside a quest.
type Phase struct {
	PhasePos token.Position
	Name     *String
	Body     *Block
}

func (x *Phase) Pos() token.Position { return x.PhasePos }
func (x *Phase) End() token.Position { return x.Body.End() }
func (x *Phase) String() string      { return "phase " + x.Name.String() + " " + x.Body.String() }

// Encounter is a named encounter block.
type Encounter struct {
	Encounter token.Position
	Name      *String
	Body      *Block
}

func (x *Encounter) stmtNode() {}

func (x *Encounter) Pos() token.Position { return x.Encounter }
func (x *Encounter) End() token.Position { return x.Body.End() }
func (x *Encounter) String() string      { return "encounter " + x.Name.String() + " " + x.Body.String() }

// Give transfers an item to a target: give item to target.
type Give struct {
	Give   token.Position
	Item   Expr
	To     token.Position
	Target Expr
}

func (x *Give) stmtNode() {}

func (x *Give) Pos() token.Position { return x.Give }
func (x *Give) End() token.Position { return x.Target.End() }
func (x *Give) String() string      { return "give " + x.Item.String() + " to " + x.Target.String() }

// Take removes an item from a source: take item from source.
type Take struct {
	Take   token.Position
	Item   Expr
	From   token.Position
	Source Expr
}

func (x *Take) stmtNode() {}

func (x *Take) Pos() token.Position { return x.Take }
func (x *Take) End() token.Position { return x.Source.End() }
func (x *Take) String() string      { return "take " + x.Item.String() + " from " + x.Source.String() }

// Spawn spawns a named entity with optional stat overrides:
// spawn "Goblin" with { hp: 3 }.
type Spawn struct {
	Spawn     token.Position
	Name      *String
	With      token.Position // unset when there are no overrides
	Overrides *StatBlock     // nil when there is no "with" clause
}

func (x *Spawn) stmtNode() {}

func (x *Spawn) Pos() token.Position { return x.Spawn }

func (x *Spawn) End() token.Position {
	if x.Overrides != nil {
		return x.Overrides.End()
	}
	return x.Name.End()
}

func (x *Spawn) String() string {
	if x.Overrides == nil {
		return "spawn " + x.Name.String()
	}
	return "spawn " + x.Name.String() + " with " + x.Overrides.String()
}

// Strike is a combat action: strike target with weapon.
type Strike struct {
	Strike token.Position
	Target Expr
	With   token.Position
	Weapon Expr
}

func (x *Strike) stmtNode() {}

func (x *Strike) Pos() token.Position { return x.Strike }
func (x *Strike) End() token.Position { return x.Weapon.End() }
func (x *Strike) String() string      { return "strike " + x.Target.String() + " with " + x.Weapon.String() }
