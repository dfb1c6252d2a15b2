package compiler

import (
	"fmt"
	"strconv"

	"minicc/pkg/diag"
)

// Parser consumes the lexer's token stream and builds the syntax tree.
//
// Grammar:
//
//	program         = (top_decl | pp_directive)*
//	pp_directive    = "#" IDENT (any token except ";" or EOF)* (";")?
//	top_decl        = type IDENT (function_tail | variable_tail)
//	function_tail   = "(" param_list? ")" (compound_stmt | ";")
//	variable_tail   = ("[" INTEGER? "]")? ("=" expression)? ";"
//	param_list      = param ("," param)*
//	compound_stmt   = "{" statement* "}"
//	statement       = var_decl | if | while | return | compound_stmt | expression_stmt
//	expression      = assignment
//	assignment      = logical_or ("=" assignment)?
//	logical_or      = logical_and ("||" logical_and)*
//	logical_and     = equality ("&&" equality)*
//	equality        = relational (("==" | "!=") relational)*
//	relational      = additive (("<" | ">" | "<=" | ">=") additive)*
//	additive        = multiplicative (("+" | "-") multiplicative)*
//	multiplicative  = unary (("*" | "/" | "%") unary)*
//	unary           = ("-" | "!" | "~") unary | postfix
//	postfix         = primary ("[" expression "]" | "(" args? ")" | "++" | "--")*
//	primary         = IDENT | INTEGER | CHARACTER | STRING | "(" expression ")"
//
// All binary operators are left-associative; assignment is
// right-associative. Errors are reported through the diag.Reporter and
// recovered per construct: the top level and compound statements skip
// to a synchronizing token, expression-level failures leave the slot
// nil and return.
type Parser struct {
	lx  *Lexer
	rep *diag.Reporter
	tok Token // snapshot of the lexer's current token
}

// NewParser constructs a parser over an initialized lexer.
func NewParser(lx *Lexer, rep *diag.Reporter) *Parser {
	return &Parser{lx: lx, rep: rep, tok: lx.Peek()}
}

// check reports whether the current token has the given type.
func (p *Parser) check(tt TokenType) bool {
	return p.tok.Type == tt
}

// eat consumes the current token if it matches tt and returns true;
// otherwise it reports a diagnostic and leaves the token in place.
// Recovery is the caller's decision.
func (p *Parser) eat(tt TokenType) bool {
	if p.tok.Type == tt {
		p.advance()
		return true
	}
	p.errorf("Expected token %s, got %s", tt, p.tok.Type)
	return false
}

// advance unconditionally steps past the current token.
func (p *Parser) advance() {
	p.lx.Advance()
	p.tok = p.lx.Peek()
}

func (p *Parser) errorf(format string, args ...any) {
	p.rep.ReportAt(p.tok.Filename, p.tok.Line, p.tok.Column, fmt.Sprintf(format, args...))
}

// syncToSemicolon discards tokens up to and including the next ";", or
// up to EOF. Top-level panic-mode recovery.
func (p *Parser) syncToSemicolon() {
	for !p.check(EOF) && !p.check(SEMICOLON) {
		p.advance()
	}
	if p.check(SEMICOLON) {
		p.eat(SEMICOLON)
	}
}

func dataType(tt TokenType) DataType {
	switch tt {
	case INT:
		return TypeInt
	case CHAR:
		return TypeChar
	default:
		return TypeVoid
	}
}

// ParseProgram parses the whole translation unit. It never returns
// nil; on errors the program holds whatever declarations survived.
func (p *Parser) ParseProgram() *Program {
	program := &Program{}

	for !p.check(EOF) {
		// Preprocessor directives are recognized and skipped, not
		// expanded. The skip runs to the next ";" or EOF.
		if p.check(POUND) {
			p.eat(POUND)
			if p.check(IDENTIFIER) {
				p.eat(IDENTIFIER)
				for !p.check(EOF) && !p.check(SEMICOLON) {
					p.advance()
				}
				if p.check(SEMICOLON) {
					p.eat(SEMICOLON)
				}
			}
			continue
		}

		if p.check(INT) || p.check(CHAR) || p.check(VOID) {
			typeTok := p.tok.Type
			p.eat(typeTok)

			if p.check(IDENTIFIER) {
				name := p.tok.Lexeme
				p.eat(IDENTIFIER)

				if p.check(LPAREN) {
					fn := p.parseFunction()
					fn.ReturnType = dataType(typeTok)
					fn.Name = name
					program.Decls = append(program.Decls, fn)
				} else {
					v := p.parseGlobalVariable(typeTok, name)
					program.Decls = append(program.Decls, v)
				}
			} else {
				p.errorf("Expected identifier after type specifier")
				p.syncToSemicolon()
			}
		} else {
			p.errorf("Expected type specifier")
			p.syncToSemicolon()
		}
	}

	return program
}

// parseGlobalVariable parses the remainder of a global declaration;
// the type and name have already been consumed.
func (p *Parser) parseGlobalVariable(typeTok TokenType, name string) *VariableDecl {
	v := &VariableDecl{Type: dataType(typeTok), Name: name}

	if p.check(LBRACKET) {
		p.eat(LBRACKET)
		if p.check(INTEGER) {
			v.IsArray = true
			v.ArraySize, _ = strconv.Atoi(p.tok.Lexeme)
			p.eat(INTEGER)
		}
		p.eat(RBRACKET)
	}

	if p.check(ASSIGN) {
		p.eat(ASSIGN)
		if init := p.parseExpression(); init != nil {
			v.Init = init
		}
	}

	p.eat(SEMICOLON)
	return v
}

// parseFunction parses a function tail starting at "(". Name and
// return type are filled in by the caller.
func (p *Parser) parseFunction() *Function {
	fn := &Function{}

	p.eat(LPAREN)
	if !p.check(RPAREN) {
		fn.Params = p.parseParameterList()
	}
	p.eat(RPAREN)

	if p.check(LBRACE) {
		fn.Body = p.parseCompoundStatement()
	} else {
		// Declaration without a body.
		p.eat(SEMICOLON)
	}

	return fn
}

// parseParameterList parses one or more parameters. A lone "void"
// yields an empty list.
func (p *Parser) parseParameterList() *ParamList {
	list := &ParamList{}

	if p.check(INT) || p.check(CHAR) || p.check(VOID) {
		typeTok := p.tok.Type
		p.eat(typeTok)

		if typeTok == VOID && !p.check(IDENTIFIER) {
			return list
		}
		if p.check(IDENTIFIER) {
			list.Params = append(list.Params, p.parseParameter(typeTok))
		}
	}

	for p.check(COMMA) {
		p.eat(COMMA)
		if p.check(INT) || p.check(CHAR) || p.check(VOID) {
			typeTok := p.tok.Type
			p.eat(typeTok)
			if p.check(IDENTIFIER) {
				list.Params = append(list.Params, p.parseParameter(typeTok))
			}
		}
	}

	return list
}

// parseParameter parses a parameter name and optional "[]" suffix; the
// type has already been consumed and the current token is IDENTIFIER.
func (p *Parser) parseParameter(typeTok TokenType) *Parameter {
	param := &Parameter{Type: dataType(typeTok), Name: p.tok.Lexeme}
	p.eat(IDENTIFIER)

	if p.check(LBRACKET) {
		p.eat(LBRACKET)
		p.eat(RBRACKET)
		param.IsArray = true
	}

	return param
}

// parseCompoundStatement parses "{ statement* }". A failed statement
// triggers recovery: skip to ";", "}" or EOF, consume the ";", go on.
func (p *Parser) parseCompoundStatement() *CompoundStmt {
	block := &CompoundStmt{}
	p.eat(LBRACE)

	for !p.check(RBRACE) && !p.check(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			for !p.check(SEMICOLON) && !p.check(RBRACE) && !p.check(EOF) {
				p.advance()
			}
			if p.check(SEMICOLON) {
				p.eat(SEMICOLON)
			}
		}
	}

	p.eat(RBRACE)
	return block
}

// parseStatement dispatches on the leading token. It returns nil when
// the statement could not produce a node; the enclosing block recovers.
func (p *Parser) parseStatement() Stmt {
	switch {
	case p.check(INT) || p.check(CHAR) || p.check(VOID):
		typeTok := p.tok.Type
		p.eat(typeTok)
		if decl := p.parseVariableDeclaration(typeTok); decl != nil {
			return decl
		}
		return nil

	case p.check(IF):
		return p.parseIfStatement()

	case p.check(WHILE):
		return p.parseWhileStatement()

	case p.check(RETURN):
		return p.parseReturnStatement()

	case p.check(LBRACE):
		return p.parseCompoundStatement()

	default:
		if stmt := p.parseExpressionStatement(); stmt != nil {
			return stmt
		}
		return nil
	}
}

// parseVariableDeclaration parses a local declaration whose type token
// has already been consumed.
func (p *Parser) parseVariableDeclaration(typeTok TokenType) *VariableDecl {
	if !p.check(IDENTIFIER) {
		p.errorf("Expected identifier in variable declaration")
		return nil
	}

	decl := &VariableDecl{Type: dataType(typeTok), Name: p.tok.Lexeme}
	p.eat(IDENTIFIER)

	if p.check(LBRACKET) {
		p.eat(LBRACKET)
		if p.check(INTEGER) {
			decl.IsArray = true
			decl.ArraySize, _ = strconv.Atoi(p.tok.Lexeme)
			p.eat(INTEGER)
		}
		p.eat(RBRACKET)
	}

	if p.check(ASSIGN) {
		p.eat(ASSIGN)
		if init := p.parseExpression(); init != nil {
			decl.Init = init
		}
	}

	p.eat(SEMICOLON)
	return decl
}

// parseExpressionStatement parses "expression? ;". When the expression
// fails to parse it returns nil so the block can resynchronize instead
// of spinning on the offending token.
func (p *Parser) parseExpressionStatement() *ExprStmt {
	stmt := &ExprStmt{}

	if p.check(SEMICOLON) {
		p.eat(SEMICOLON)
		return stmt
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	stmt.X = expr

	p.eat(SEMICOLON)
	return stmt
}

func (p *Parser) parseIfStatement() *IfStmt {
	stmt := &IfStmt{}

	p.eat(IF)
	p.eat(LPAREN)
	if cond := p.parseExpression(); cond != nil {
		stmt.Cond = cond
	}
	p.eat(RPAREN)

	if then := p.parseStatement(); then != nil {
		stmt.Then = then
	}

	if p.check(ELSE) {
		p.eat(ELSE)
		if els := p.parseStatement(); els != nil {
			stmt.Else = els
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() *WhileStmt {
	stmt := &WhileStmt{}

	p.eat(WHILE)
	p.eat(LPAREN)
	if cond := p.parseExpression(); cond != nil {
		stmt.Cond = cond
	}
	p.eat(RPAREN)

	if body := p.parseStatement(); body != nil {
		stmt.Body = body
	}

	return stmt
}

func (p *Parser) parseReturnStatement() *ReturnStmt {
	stmt := &ReturnStmt{}

	p.eat(RETURN)
	if !p.check(SEMICOLON) {
		if value := p.parseExpression(); value != nil {
			stmt.Value = value
		}
	}
	p.eat(SEMICOLON)

	return stmt
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() Expr {
	return p.parseAssignment()
}

// parseAssignment handles "=", right-associatively.
func (p *Parser) parseAssignment() Expr {
	expr := p.parseLogicalOr()

	if p.check(ASSIGN) {
		assign := &AssignExpr{Target: expr}
		p.eat(ASSIGN)
		if value := p.parseAssignment(); value != nil {
			assign.Value = value
		}
		return assign
	}

	return expr
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() Expr {
	left := p.parseLogicalAnd()

	for p.check(OR) {
		node := &BinaryExpr{Op: OpLogOr, Left: left}
		p.eat(OR)
		if right := p.parseLogicalAnd(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() Expr {
	left := p.parseEquality()

	for p.check(AND) {
		node := &BinaryExpr{Op: OpLogAnd, Left: left}
		p.eat(AND)
		if right := p.parseEquality(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseEquality handles == and !=
func (p *Parser) parseEquality() Expr {
	left := p.parseRelational()

	for p.check(EQ) || p.check(NEQ) {
		node := &BinaryExpr{Left: left}
		if p.check(EQ) {
			node.Op = OpEq
			p.eat(EQ)
		} else {
			node.Op = OpNeq
			p.eat(NEQ)
		}
		if right := p.parseRelational(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseRelational handles <, >, <= and >=
func (p *Parser) parseRelational() Expr {
	left := p.parseAdditive()

	for p.check(LT) || p.check(GT) || p.check(LTE) || p.check(GTE) {
		node := &BinaryExpr{Left: left}
		switch {
		case p.check(LT):
			node.Op = OpLt
			p.eat(LT)
		case p.check(GT):
			node.Op = OpGt
			p.eat(GT)
		case p.check(LTE):
			node.Op = OpLte
			p.eat(LTE)
		default:
			node.Op = OpGte
			p.eat(GTE)
		}
		if right := p.parseAdditive(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseAdditive handles + and -
func (p *Parser) parseAdditive() Expr {
	left := p.parseMultiplicative()

	for p.check(PLUS) || p.check(MINUS) {
		node := &BinaryExpr{Left: left}
		if p.check(PLUS) {
			node.Op = OpAdd
			p.eat(PLUS)
		} else {
			node.Op = OpSub
			p.eat(MINUS)
		}
		if right := p.parseMultiplicative(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseMultiplicative handles *, / and %
func (p *Parser) parseMultiplicative() Expr {
	left := p.parseUnary()

	for p.check(STAR) || p.check(SLASH) || p.check(PERCENT) {
		node := &BinaryExpr{Left: left}
		switch {
		case p.check(STAR):
			node.Op = OpMul
			p.eat(STAR)
		case p.check(SLASH):
			node.Op = OpDiv
			p.eat(SLASH)
		default:
			node.Op = OpMod
			p.eat(PERCENT)
		}
		if right := p.parseUnary(); right != nil {
			node.Right = right
		}
		left = node
	}

	return left
}

// parseUnary handles the prefix operators -, ! and ~
func (p *Parser) parseUnary() Expr {
	if p.check(MINUS) || p.check(NOT) || p.check(BITNOT) {
		node := &UnaryExpr{}
		switch {
		case p.check(MINUS):
			node.Op = OpNegate
			p.eat(MINUS)
		case p.check(NOT):
			node.Op = OpNot
			p.eat(NOT)
		default:
			node.Op = OpBitNot
			p.eat(BITNOT)
		}
		if operand := p.parseUnary(); operand != nil {
			node.Operand = operand
		}
		return node
	}

	return p.parsePostfix()
}

// parsePostfix handles subscripts, calls, and postfix ++/--
func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(LBRACKET):
			sub := &SubscriptExpr{Array: expr}
			p.eat(LBRACKET)
			if index := p.parseExpression(); index != nil {
				sub.Index = index
			}
			p.eat(RBRACKET)
			expr = sub

		case p.check(LPAREN):
			call := &CallExpr{Fun: expr}
			p.eat(LPAREN)
			if !p.check(RPAREN) {
				args := &ArgList{}
				if arg := p.parseExpression(); arg != nil {
					args.Args = append(args.Args, arg)
				}
				for p.check(COMMA) {
					p.eat(COMMA)
					if arg := p.parseExpression(); arg != nil {
						args.Args = append(args.Args, arg)
					}
				}
				call.Args = args
			}
			p.eat(RPAREN)
			expr = call

		case p.check(INC):
			p.eat(INC)
			expr = &UnaryExpr{Op: OpPostInc, Operand: expr}

		case p.check(DEC):
			p.eat(DEC)
			expr = &UnaryExpr{Op: OpPostDec, Operand: expr}

		default:
			return expr
		}
	}
}

// parsePrimary handles literals, identifiers, and parenthesised
// expressions. On failure it reports and returns nil without consuming
// the offending token.
func (p *Parser) parsePrimary() Expr {
	switch {
	case p.check(IDENTIFIER):
		node := &Identifier{Name: p.tok.Lexeme}
		p.eat(IDENTIFIER)
		return node

	case p.check(INTEGER):
		value, _ := strconv.Atoi(p.tok.Lexeme)
		p.eat(INTEGER)
		return &IntegerLit{Value: value}

	case p.check(CHARACTER):
		var value byte
		if len(p.tok.Lexeme) > 0 {
			value = p.tok.Lexeme[0]
		}
		p.eat(CHARACTER)
		return &CharacterLit{Value: value}

	case p.check(STRING):
		node := &StringLit{Value: p.tok.Lexeme}
		p.eat(STRING)
		return node

	case p.check(LPAREN):
		p.eat(LPAREN)
		expr := p.parseExpression()
		p.eat(RPAREN)
		return expr

	default:
		p.errorf("Expected expression")
		return nil
	}
}
