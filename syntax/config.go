// Package syntax restricts which QuestLang features a parsed file may use.
package syntax

import "sort"

// SyntaxConfig controls which language features are disallowed.
// Zero value allows all features (full language).
type SyntaxConfig struct {
	// Statements
	DisallowVariableDecl bool // var
	DisallowAssignment   bool // x = value

	// Functions
	DisallowReturn   bool // return statements
	DisallowFuncDef  bool // fn declarations and lambdas
	DisallowFuncCall bool // f(x), obj.m(x)

	// Control flow
	DisallowIf    bool // if/else
	DisallowLoops bool // while, for-in

	// Game constructs
	DisallowEntities    bool // hero, enemy, item
	DisallowQuests      bool // quest, phase, encounter
	DisallowCombat      bool // spawn, strike
	DisallowInventory   bool // give, take
	DisallowDialogue    bool // say
	DisallowSkillChecks bool // check
}

// Presets for common use cases.
var (
	// FullLanguage allows all features (zero value, default behavior).
	FullLanguage = SyntaxConfig{}

	// DialogueOnly is meant for conversation scripts attached to a
	// character: dialogue trees with branching, inventory changes and
	// skill checks, but no world building, combat or reusable functions.
	DialogueOnly = SyntaxConfig{
		DisallowReturn:   true,
		DisallowFuncDef:  true,
		DisallowLoops:    true,
		DisallowEntities: true,
		DisallowQuests:   true,
		DisallowCombat:   true,
	}

	// NoLoops allows everything except while and for-in loops, so every
	// script runs in a bounded number of steps unless it recurses.
	NoLoops = SyntaxConfig{
		DisallowLoops: true,
	}
)

var presets = map[string]SyntaxConfig{
	"full":     FullLanguage,
	"dialogue": DialogueOnly,
	"noloops":  NoLoops,
}

// Preset returns the preset with the given name.
func Preset(name string) (SyntaxConfig, bool) {
	config, ok := presets[name]
	return config, ok
}

// PresetNames lists the names accepted by Preset.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
