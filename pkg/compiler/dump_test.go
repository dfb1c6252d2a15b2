package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpFunction(t *testing.T) {
	tree := &Program{Decls: []Node{
		&Function{
			Name:       "main",
			ReturnType: TypeInt,
			Params:     &ParamList{},
			Body: &CompoundStmt{Stmts: []Stmt{
				&ReturnStmt{Value: &IntegerLit{Value: 0}},
			}},
		},
	}}

	want := `Program (1 children)
  Function: main, Return Type: int
    Parameters:
      Parameter List (0 parameters)
    Body:
      Compound Statement (1 statements)
        Return Statement
          Value:
            Integer: 0
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpDeclarationOnlyFunction(t *testing.T) {
	tree := &Function{Name: "f", ReturnType: TypeVoid}

	want := `Function: f, Return Type: void
  Parameters:
    (none)
  Body:
    (none - function declaration only)
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpVariableDecl(t *testing.T) {
	tree := &VariableDecl{
		Name:      "a",
		Type:      TypeInt,
		IsArray:   true,
		ArraySize: 10,
		Init:      &IntegerLit{Value: 0},
	}

	want := `Variable Declaration: a, Type: int[][10]
  Initializer:
    Integer: 0
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpIfElse(t *testing.T) {
	tree := &IfStmt{
		Cond: &BinaryExpr{Op: OpEq, Left: &Identifier{Name: "x"}, Right: &IntegerLit{Value: 0}},
		Then: &ReturnStmt{Value: &IntegerLit{Value: 1}},
		Else: &ReturnStmt{Value: &IntegerLit{Value: 2}},
	}

	want := `If Statement
  Condition:
    Binary Expression: ==
      Left:
        Identifier: x
      Right:
        Integer: 0
  If Branch:
    Return Statement
      Value:
        Integer: 1
  Else Branch:
    Return Statement
      Value:
        Integer: 2
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpAssignAndCall(t *testing.T) {
	tree := &ExprStmt{X: &AssignExpr{
		Target: &Identifier{Name: "x"},
		Value: &CallExpr{
			Fun:  &Identifier{Name: "f"},
			Args: &ArgList{Args: []Expr{&Identifier{Name: "y"}}},
		},
	}}

	want := `Expression Statement
  Assignment Expression
    Left (target):
      Identifier: x
    Right (value):
      Function Call
        Function:
          Identifier: f
        Arguments:
          Argument List (1 arguments)
            Identifier: y
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpCallWithoutArguments(t *testing.T) {
	tree := &CallExpr{Fun: &Identifier{Name: "f"}}

	want := `Function Call
  Function:
    Identifier: f
  Arguments:
    (none)
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpMissingRequiredChild(t *testing.T) {
	tree := &WhileStmt{Cond: nil, Body: &CompoundStmt{}}

	want := `While Statement
  Condition:
    NULL
  Body:
    Compound Statement (0 statements)
`
	assert.Equal(t, want, Dump(tree))
}

func TestDumpCharacter(t *testing.T) {
	assert.Equal(t, "Character: 'a'\n", Dump(&CharacterLit{Value: 'a'}))
	assert.Equal(t, "Character: '\\x0A'\n", Dump(&CharacterLit{Value: '\n'}))
	assert.Equal(t, "Character: '\\x00'\n", Dump(&CharacterLit{Value: 0}))
	assert.Equal(t, "Character: '~'\n", Dump(&CharacterLit{Value: '~'}))
}

func TestDumpUnaryOperators(t *testing.T) {
	want := `Unary Expression: ++ (post)
  Operand:
    Identifier: n
`
	assert.Equal(t, want, Dump(&UnaryExpr{Op: OpPostInc, Operand: &Identifier{Name: "n"}}))
}

func TestDumpString(t *testing.T) {
	assert.Equal(t, "String: \"hi\"\n", Dump(&StringLit{Value: "hi"}))
	// Raw content is printed as stored, escapes and all.
	assert.Equal(t, "String: \"a\\\"b\"\n", Dump(&StringLit{Value: `a\"b`}))
}

func TestDumpNil(t *testing.T) {
	assert.Equal(t, "NULL\n", Dump(nil))
}
