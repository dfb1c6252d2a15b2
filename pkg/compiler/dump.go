package compiler

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a human-readable dump of the tree rooted at n to w,
// two spaces of indentation per level. A nil node prints as NULL so a
// violated grammar slot is visible in the output.
func Fprint(w io.Writer, n Node) {
	fprint(w, n, 0)
}

// Dump returns the Fprint output as a string.
func Dump(n Node) string {
	var sb strings.Builder
	Fprint(&sb, n)
	return sb.String()
}

func indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
}

func fprint(w io.Writer, n Node, depth int) {
	if n == nil {
		indent(w, depth)
		fmt.Fprintln(w, "NULL")
		return
	}

	indent(w, depth)

	switch n := n.(type) {
	case *Program:
		fmt.Fprintf(w, "Program (%d children)\n", len(n.Decls))
		for _, d := range n.Decls {
			fprint(w, d, depth+1)
		}

	case *Function:
		fmt.Fprintf(w, "Function: %s, Return Type: %s\n", n.Name, n.ReturnType)

		indent(w, depth+1)
		fmt.Fprintln(w, "Parameters:")
		if n.Params != nil {
			fprint(w, n.Params, depth+2)
		} else {
			indent(w, depth+2)
			fmt.Fprintln(w, "(none)")
		}

		indent(w, depth+1)
		fmt.Fprintln(w, "Body:")
		if n.Body != nil {
			fprint(w, n.Body, depth+2)
		} else {
			indent(w, depth+2)
			fmt.Fprintln(w, "(none - function declaration only)")
		}

	case *ParamList:
		fmt.Fprintf(w, "Parameter List (%d parameters)\n", len(n.Params))
		for _, p := range n.Params {
			fprint(w, p, depth+1)
		}

	case *Parameter:
		suffix := ""
		if n.IsArray {
			suffix = "[]"
		}
		fmt.Fprintf(w, "Parameter: %s, Type: %s%s\n", n.Name, n.Type, suffix)

	case *CompoundStmt:
		fmt.Fprintf(w, "Compound Statement (%d statements)\n", len(n.Stmts))
		for _, s := range n.Stmts {
			fprint(w, s, depth+1)
		}

	case *VariableDecl:
		suffix := ""
		if n.IsArray {
			suffix = "[]"
		}
		fmt.Fprintf(w, "Variable Declaration: %s, Type: %s%s", n.Name, n.Type, suffix)
		if n.IsArray && n.ArraySize > 0 {
			fmt.Fprintf(w, "[%d]", n.ArraySize)
		}
		fmt.Fprintln(w)
		if n.Init != nil {
			indent(w, depth+1)
			fmt.Fprintln(w, "Initializer:")
			fprint(w, n.Init, depth+2)
		}

	case *IfStmt:
		fmt.Fprintln(w, "If Statement")

		indent(w, depth+1)
		fmt.Fprintln(w, "Condition:")
		fprint(w, n.Cond, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "If Branch:")
		fprint(w, n.Then, depth+2)

		if n.Else != nil {
			indent(w, depth+1)
			fmt.Fprintln(w, "Else Branch:")
			fprint(w, n.Else, depth+2)
		}

	case *WhileStmt:
		fmt.Fprintln(w, "While Statement")

		indent(w, depth+1)
		fmt.Fprintln(w, "Condition:")
		fprint(w, n.Cond, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "Body:")
		fprint(w, n.Body, depth+2)

	case *ReturnStmt:
		fmt.Fprintln(w, "Return Statement")
		if n.Value != nil {
			indent(w, depth+1)
			fmt.Fprintln(w, "Value:")
			fprint(w, n.Value, depth+2)
		}

	case *ExprStmt:
		fmt.Fprintln(w, "Expression Statement")
		if n.X != nil {
			fprint(w, n.X, depth+1)
		}

	case *BinaryExpr:
		fmt.Fprintf(w, "Binary Expression: %s\n", n.Op)

		indent(w, depth+1)
		fmt.Fprintln(w, "Left:")
		fprint(w, n.Left, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "Right:")
		fprint(w, n.Right, depth+2)

	case *AssignExpr:
		fmt.Fprintln(w, "Assignment Expression")

		indent(w, depth+1)
		fmt.Fprintln(w, "Left (target):")
		fprint(w, n.Target, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "Right (value):")
		fprint(w, n.Value, depth+2)

	case *UnaryExpr:
		fmt.Fprintf(w, "Unary Expression: %s\n", n.Op)

		indent(w, depth+1)
		fmt.Fprintln(w, "Operand:")
		fprint(w, n.Operand, depth+2)

	case *CallExpr:
		fmt.Fprintln(w, "Function Call")

		indent(w, depth+1)
		fmt.Fprintln(w, "Function:")
		fprint(w, n.Fun, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "Arguments:")
		if n.Args != nil {
			fprint(w, n.Args, depth+2)
		} else {
			indent(w, depth+2)
			fmt.Fprintln(w, "(none)")
		}

	case *ArgList:
		fmt.Fprintf(w, "Argument List (%d arguments)\n", len(n.Args))
		for _, a := range n.Args {
			fprint(w, a, depth+1)
		}

	case *SubscriptExpr:
		fmt.Fprintln(w, "Array Subscript")

		indent(w, depth+1)
		fmt.Fprintln(w, "Array:")
		fprint(w, n.Array, depth+2)

		indent(w, depth+1)
		fmt.Fprintln(w, "Index:")
		fprint(w, n.Index, depth+2)

	case *Identifier:
		fmt.Fprintf(w, "Identifier: %s\n", n.Name)

	case *IntegerLit:
		fmt.Fprintf(w, "Integer: %d\n", n.Value)

	case *CharacterLit:
		if n.Value >= 32 && n.Value <= 126 {
			fmt.Fprintf(w, "Character: '%c'\n", n.Value)
		} else {
			fmt.Fprintf(w, "Character: '\\x%02X'\n", n.Value)
		}

	case *StringLit:
		fmt.Fprintf(w, "String: \"%s\"\n", n.Value)

	default:
		fmt.Fprintf(w, "Unknown node type: %T\n", n)
	}
}
