package syntax

import "github.com/questlang/questlang/ast"

// SyntaxValidator validates an AST against a SyntaxConfig.
type SyntaxValidator struct {
	config SyntaxConfig
}

// NewSyntaxValidator creates a validator for the given configuration.
func NewSyntaxValidator(config SyntaxConfig) *SyntaxValidator {
	return &SyntaxValidator{config: config}
}

// Validate checks the AST against the syntax configuration. Every
// offending node is reported, including nodes nested inside other
// offending nodes.
func (v *SyntaxValidator) Validate(file *ast.SourceFile) []ValidationError {
	var errors []ValidationError
	for node := range ast.Preorder(file) {
		if msg := v.violation(node); msg != "" {
			errors = append(errors, ValidationError{
				Message:  msg,
				Node:     node,
				Position: node.Pos(),
			})
		}
	}
	return errors
}

// violation returns a description of the disallowed feature node uses, or
// the empty string.
func (v *SyntaxValidator) violation(node ast.Node) string {
	c := v.config
	switch node.(type) {
	case *ast.Var:
		if c.DisallowVariableDecl {
			return "variable declarations are not allowed"
		}
	case *ast.Assign:
		if c.DisallowAssignment {
			return "assignment is not allowed"
		}
	case *ast.Return:
		if c.DisallowReturn {
			return "return statements are not allowed"
		}
	case *ast.FuncDef, *ast.Lambda:
		if c.DisallowFuncDef {
			return "function definitions are not allowed"
		}
	case *ast.Call, *ast.MethodCall:
		if c.DisallowFuncCall {
			return "function calls are not allowed"
		}
	case *ast.If:
		if c.DisallowIf {
			return "if statements are not allowed"
		}
	case *ast.While, *ast.ForIn:
		if c.DisallowLoops {
			return "loops are not allowed"
		}
	case *ast.HeroDecl, *ast.EnemyDecl, *ast.ItemDecl:
		if c.DisallowEntities {
			return "entity declarations are not allowed"
		}
	case *ast.QuestDecl, *ast.Phase, *ast.Encounter:
		if c.DisallowQuests {
			return "quests and encounters are not allowed"
		}
	case *ast.Spawn, *ast.Strike:
		if c.DisallowCombat {
			return "combat statements are not allowed"
		}
	case *ast.Give, *ast.Take:
		if c.DisallowInventory {
			return "inventory statements are not allowed"
		}
	case *ast.Dialogue:
		if c.DisallowDialogue {
			return "dialogue is not allowed"
		}
	case *ast.SkillCheck:
		if c.DisallowSkillChecks {
			return "skill checks are not allowed"
		}
	}
	return ""
}
