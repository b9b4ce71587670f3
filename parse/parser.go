package parse

import (
	"strconv"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/diag"
)

// Parser turns a token stream into an ast.Math document. It accumulates
// every error it hits in errors rather than stopping at the first one,
// matching the teacher convention of collecting parse errors onto the
// parser rather than returning on first failure.
type Parser struct {
	lex    *Lexer
	file   string
	cur    Token
	peek   Token
	errors []error
}

func NewParser(file, source string) *Parser {
	p := &Parser{lex: NewLexer(source), file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) loc(s diag.Span) diag.GlobalSpan {
	return diag.GlobalSpan{File: p.file, Span: s}
}

func (p *Parser) errorf(expected ...TokenType) {
	p.errors = append(p.errors, UnexpectedTokenError{Got: p.cur, Expected: expected, Loc: p.loc(p.cur.Span)})
}

// expect consumes cur if it has type tt, else records an error and
// leaves cur in place so the caller can attempt recovery.
func (p *Parser) expect(tt TokenType) (Token, bool) {
	if p.cur.Type != tt {
		p.errorf(tt)
		return Token{}, false
	}
	tok := p.cur
	p.next()
	return tok, true
}

// ParseExpr parses a single standalone expression, for tooling (such as
// the interactive debugging REPL) that works with expressions outside
// the context of a whole document.
func ParseExpr(file, source string) (ast.Node, []error) {
	p := NewParser(file, source)
	expr := p.parseExpr()
	return expr, p.errors
}

// ParseMath parses a whole document: one or more NamedFormulas groups.
func (p *Parser) ParseMath() ast.Math {
	var math ast.Math
	for p.cur.Type != EOF {
		math.Groups = append(math.Groups, p.parseNamedFormulas())
	}
	return math
}

func (p *Parser) parseNamedFormulas() ast.NamedFormulas {
	start := p.cur.Span
	p.expect(LBRACKET)
	name, _ := p.expect(IDENT)
	p.expect(RBRACKET)

	var formulas []ast.FullFormula
	for p.cur.Type == INTEGER {
		formulas = append(formulas, p.parseFullFormula())
	}
	end := start
	if len(formulas) > 0 {
		end = formulas[len(formulas)-1].Pos
	}
	return ast.NamedFormulas{
		Name:     name.Value,
		Formulas: formulas,
		Pos:      diag.Span{Start: start.Start, End: end.End},
	}
}

func (p *Parser) parseFullFormula() ast.FullFormula {
	numTok := p.cur
	p.next()
	position, _ := strconv.Atoi(numTok.Value)
	p.expect(DOT)

	formula := p.parseFormula()

	var proof *ast.Proof
	if p.cur.Type == LBRACE {
		pr := p.parseProof()
		proof = &pr
	}
	semi, _ := p.expect(SEMI)

	return ast.FullFormula{
		Position: position,
		Formula:  formula,
		Proof:    proof,
		Pos:      diag.Span{Start: numTok.Span.Start, End: semi.Span.End},
	}
}

func (p *Parser) parseFormula() ast.Formula {
	left := p.parseExpr()
	p.expect(ARROW)
	right := p.parseExpr()
	return ast.Formula{
		Left:  left,
		Right: right,
		Pos:   diag.Span{Start: left.Span().Start, End: right.Span().End},
	}
}

func (p *Parser) parseProof() ast.Proof {
	start := p.cur.Span
	p.expect(LBRACE)
	var steps []ast.ProofStep
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		steps = append(steps, p.parseProofStep())
	}
	end := p.cur.Span
	p.expect(RBRACE)
	return ast.Proof{Steps: steps, Pos: diag.Span{Start: start.Start, End: end.End}}
}

// parseProofStep parses `expr ";" visual_pointer formula_ref binding,*
// function_binding,* ";"`. The visual pointer is read directly off the
// token stream: an optional DOT token followed by one or more
// consecutive CARET tokens, whose combined span is later mapped back to
// a column on the shown expression's source line.
func (p *Parser) parseProofStep() ast.ProofStep {
	shown := p.parseExpr()
	p.expect(SEMI)

	pointer := p.parseVisualPointer()
	ref := p.parseFormulaRef()

	var bindings []ast.Binding
	var fnBindings []ast.FunctionBinding
	for p.cur.Type == IDENT || p.cur.Type == DOLLAR {
		if p.cur.Type == DOLLAR {
			fnBindings = append(fnBindings, p.parseFunctionBinding())
		} else {
			bindings = append(bindings, p.parseBinding())
		}
		if p.cur.Type == COMMA {
			p.next()
		}
	}

	end, _ := p.expect(SEMI)

	return ast.ProofStep{
		Shown:            shown,
		Pointer:          pointer,
		UsedFormula:      ref,
		Bindings:         bindings,
		FunctionBindings: fnBindings,
		Pos:              diag.Span{Start: shown.Span().Start, End: end.Span.End},
	}
}

func (p *Parser) parseVisualPointer() ast.VisualPointer {
	start := p.cur.Span
	if p.cur.Type == DOT {
		p.next()
	}
	if p.cur.Type != CARET {
		p.errors = append(p.errors, PointerNotFoundError{Loc: p.loc(p.cur.Span)})
		return ast.VisualPointer{Pos: p.cur.Span}
	}
	caretStart := p.cur.Span
	last := p.cur.Span
	for p.cur.Type == CARET {
		last = p.cur.Span
		p.next()
	}
	source := p.lex.Source()
	lineStart := diag.LineStart(source, caretStart.Start)
	col := caretStart.Start - lineStart
	count := last.End - caretStart.Start

	return ast.VisualPointer{
		StartChar: col,
		EndChar:   col + count,
		Pos:       diag.Span{Start: start.Start, End: last.End},
	}
}

func (p *Parser) parseFormulaRef() ast.FormulaRef {
	start := p.cur.Span
	name, _ := p.expect(IDENT)
	p.expect(DOT)
	idxTok, _ := p.expect(INTEGER)
	idx, _ := strconv.Atoi(idxTok.Value)

	dirTok, _ := p.expect(IDENT)
	dir := ast.LeftToRight
	if dirTok.Value == "r" {
		dir = ast.RightToLeft
	}

	return ast.FormulaRef{
		Module:    name.Value,
		Index:     idx,
		Direction: dir,
		Pos:       diag.Span{Start: start.Start, End: dirTok.Span.End},
	}
}

func (p *Parser) parseBinding() ast.Binding {
	name, _ := p.expect(IDENT)
	p.expect(ASSIGN)
	value := p.parseExpr()
	return ast.Binding{
		Name:  name.Value,
		Value: value,
		Pos:   diag.Span{Start: name.Span.Start, End: value.Span().End},
	}
}

func (p *Parser) parseFunctionBinding() ast.FunctionBinding {
	start := p.cur.Span
	p.expect(DOLLAR)
	name, _ := p.expect(IDENT)
	p.expect(LPAREN)
	var vars []string
	for p.cur.Type == IDENT {
		vars = append(vars, p.cur.Value)
		p.next()
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RPAREN)
	p.expect(ASSIGN)
	value := p.parseExpr()
	return ast.FunctionBinding{
		Name:      name.Value,
		Variables: vars,
		Value:     value,
		Pos:       diag.Span{Start: start.Start, End: value.Span().End},
	}
}

// Operator precedence, lowest to highest: |, &, (= != < > <= >=), (+ -),
// (* /), ^. `+` and `*` are right-associative (`a+b+c` is `a+(b+c)`);
// every other operator is left-associative, including `^` — which
// reproduces the left-associative `a^b^c` grouping the surface grammar
// requires rather than the mathematically more conventional
// right-associative chain.
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precSum
	precProduct
	precPower
)

var binaryPrec = map[TokenType]int{
	PIPE: precOr,
	AMP:  precAnd,
	EQ:   precCompare, NEQ: precCompare, LT: precCompare, GT: precCompare, LE: precCompare, GE: precCompare,
	PLUS: precSum, MINUS: precSum,
	STAR: precProduct, SLASH: precProduct,
	CARET: precPower,
}

var rightAssoc = map[TokenType]bool{PLUS: true, STAR: true}

func (p *Parser) parseExpr() ast.Node {
	return p.parseBinaryExpr(precLowest)
}

func (p *Parser) parseBinaryExpr(minPrec int) ast.Node {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrec[p.cur.Type]
		if !ok || prec <= minPrec {
			return left
		}
		op := p.cur
		p.next()
		nextMin := prec
		if rightAssoc[op.Type] {
			nextMin = prec - 1
		}
		right := p.parseBinaryExpr(nextMin)
		left = ast.NamedFunction{
			Name: op.Value,
			Args: []ast.Node{left, right},
			Pos:  diag.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
}

// parseUnary handles the prefix `-` operator, which binds between sum
// and product precedence: `-a*b` is `negative(a)*b`, and `-a+b` is
// `negative(a)+b`, not `negative(a+b)`.
func (p *Parser) parseUnary() ast.Node {
	if p.cur.Type == MINUS {
		op := p.cur
		p.next()
		operand := p.parseBinaryExpr(precProduct)
		return ast.NamedFunction{
			Name: "negative",
			Args: []ast.Node{operand},
			Pos:  diag.Span{Start: op.Span.Start, End: operand.Span().End},
		}
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() ast.Node {
	switch p.cur.Type {
	case INTEGER:
		tok := p.cur
		p.next()
		v, _ := strconv.ParseInt(tok.Value, 10, 64)
		return ast.IntegerValue{Value: v, Pos: tok.Span}

	case IDENT:
		tok := p.cur
		p.next()
		if p.cur.Type == LPAREN {
			args, end := p.parseArgList()
			return ast.NamedFunction{Name: tok.Value, Args: args, Pos: diag.Span{Start: tok.Span.Start, End: end}}
		}
		return ast.Pattern{Name: tok.Value, Pos: tok.Span}

	case DOLLAR:
		start := p.cur.Span
		p.next()
		name, _ := p.expect(IDENT)
		if p.cur.Type == LPAREN {
			args, end := p.parseArgList()
			return ast.AnyFunction{Name: name.Value, Args: args, Pos: diag.Span{Start: start.Start, End: end}}
		}
		return ast.NamedValue{Name: name.Value, Pos: diag.Span{Start: start.Start, End: name.Span.End}}

	case LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(RPAREN)
		return inner

	default:
		p.errorf(IDENT, INTEGER, DOLLAR, LPAREN)
		tok := p.cur
		p.next()
		return ast.IntegerValue{Value: 0, Pos: tok.Span}
	}
}

func (p *Parser) parseArgList() ([]ast.Node, int) {
	p.expect(LPAREN)
	var args []ast.Node
	for p.cur.Type != RPAREN && p.cur.Type != EOF {
		args = append(args, p.parseExpr())
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	end, _ := p.expect(RPAREN)
	return args, end.Span.End
}
