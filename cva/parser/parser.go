package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cvac/cva/ast"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

// Parser is a recursive-descent parser over a Cursor. It stops at the first
// lexical or syntax error and returns it; no partial tree is produced.
type Parser struct {
	file      string
	startLine int
	reader    io.Reader
	cursor    *Cursor
}

func New(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		startLine: 1,
		reader:    r,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram parses a complete source file.
func ParseProgram(src []byte, opts ...Option) (*ast.Program, error) {
	return New(bytes.NewReader(src), opts...).Program()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string, opts ...Option) (ast.Expr, error) {
	return New(strings.NewReader(src), opts...).Expression()
}

// ParseStatement parses src as a single statement.
func ParseStatement(src string, opts ...Option) (ast.Stmt, error) {
	return New(strings.NewReader(src), opts...).Statement()
}

func (p *Parser) init() error {
	if p.cursor != nil {
		return nil
	}
	src, err := ReadSource(p.reader)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	lexer := NewLexer(src, p.file)
	lexer.line = p.startLine
	cursor, err := NewCursor(lexer)
	if err != nil {
		return err
	}
	p.cursor = cursor
	return nil
}

// Program parses the whole input as a program and requires it to end at EOF.
func (p *Parser) Program() (*ast.Program, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) Expression() (ast.Expr, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEOF) {
		return nil, p.unexpected("end of input")
	}
	return expr, nil
}

func (p *Parser) Statement() (ast.Stmt, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEOF) {
		return nil, p.unexpected("end of input")
	}
	return stmt, nil
}

func (p *Parser) cur() Token {
	return p.cursor.Current()
}

func (p *Parser) check(kind TokenKind) bool {
	return p.cursor.Current().Kind == kind
}

func (p *Parser) advance() error {
	return p.cursor.Advance()
}

// expect consumes the current token if it has the given kind.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, p.unexpected(describe(kind))
	}
	return tok, p.advance()
}

func (p *Parser) unexpected(expected string) error {
	tok := p.cur()
	return &SyntaxError{
		File:     p.file,
		Line:     tok.Line,
		Expected: expected,
		Got:      tok,
	}
}

func describe(kind TokenKind) string {
	switch kind {
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenStringLiteral:
		return "string literal"
	case TokenEOF:
		return "end of file"
	}
	return "'" + kind.String() + "'"
}

// Program -> PackageDecl? CallDecl* (ClassDecl | MainMethod)*
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	if p.check(TokenPackage) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName(false)
		if err != nil {
			return nil, err
		}
		prog.Package = name
	}

	for p.check(TokenCall) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName(true)
		if err != nil {
			return nil, err
		}
		prog.Calls = append(prog.Calls, name)
	}

	for !p.check(TokenEOF) {
		switch {
		case p.check(TokenClass):
			class, err := p.parseClassDecl()
			if err != nil {
				return nil, err
			}
			prog.Classes = append(prog.Classes, class)
		case p.cur().Kind.IsType():
			if prog.Entry != nil {
				return nil, p.unexpected("a single main method")
			}
			main, err := p.parseMainMethod()
			if err != nil {
				return nil, err
			}
			prog.Entry = &ast.Entry{
				Class: ast.DefaultEntryClass,
				Main:  main,
				Line:  main.Line,
			}
		default:
			return nil, p.unexpected("end of file, a class declaration or a main method")
		}
	}

	if prog.Entry == nil {
		entry, err := p.searchMain(prog.Classes)
		if err != nil {
			return nil, err
		}
		prog.Entry = entry
	}
	return prog, nil
}

// searchMain promotes the first class declaring a method named main to the
// entry class.
func (p *Parser) searchMain(classes []*ast.Class) (*ast.Entry, error) {
	for _, class := range classes {
		if m := class.Method(ast.EntryMethodName); m != nil {
			return &ast.Entry{Class: class.Name, Line: m.Line}, nil
		}
	}
	tok := p.cur()
	return nil, &SyntaxError{
		File:     p.file,
		Line:     tok.Line,
		Expected: "a main method",
		Got:      tok,
		Err:      ErrNoEntryPoint,
	}
}

// QualifiedName -> id (. id)* (. *)? ;
// The trailing wildcard is only allowed in call declarations.
func (p *Parser) parseQualifiedName(allowStar bool) (string, error) {
	first, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	parts := []string{first.Literal}
	for p.check(TokenDot) {
		if err := p.advance(); err != nil {
			return "", err
		}
		if allowStar && p.check(TokenStar) {
			if err := p.advance(); err != nil {
				return "", err
			}
			parts = append(parts, "*")
			break
		}
		tok, err := p.expect(TokenIdent)
		if err != nil {
			return "", err
		}
		parts = append(parts, tok.Literal)
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return "", err
	}
	return strings.Join(parts, "."), nil
}

// ClassDecl -> class id ((: | extends) id)? { VarDecl* MethodDecl* }
func (p *Parser) parseClassDecl() (*ast.Class, error) {
	line := p.cur().Line
	if _, err := p.expect(TokenClass); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	class := &ast.Class{Name: name.Literal, Line: line}

	if p.check(TokenColon) || p.check(TokenExtends) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		super, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		class.Super = super.Literal
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	if class.Fields, err = p.parseVarDecls(); err != nil {
		return nil, err
	}
	for p.cur().Kind.IsType() || p.check(TokenIdent) {
		method, err := p.parseMethodDecl()
		if err != nil {
			return nil, err
		}
		class.Methods = append(class.Methods, method)
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return class, nil
}

// Type -> (primitive | String | id) ([ ])*
func (p *Parser) parseType() (ast.Type, error) {
	tok := p.cur()
	var typ ast.Type
	switch tok.Kind {
	case TokenVoid:
		typ = ast.Void
	case TokenByte:
		typ = ast.Byte
	case TokenChar:
		typ = ast.Char
	case TokenShort:
		typ = ast.Short
	case TokenInt:
		typ = ast.Int
	case TokenLong:
		typ = ast.Long
	case TokenFloat:
		typ = ast.Float
	case TokenDouble:
		typ = ast.Double
	case TokenBoolean:
		typ = ast.Boolean
	case TokenString:
		typ = ast.StringType{}
	case TokenIdent:
		typ = ast.ClassType{Name: tok.Literal}
	default:
		return nil, p.unexpected("type")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.check(TokenLBracket) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		typ = ast.ArrayType{Elem: typ}
	}
	return typ, nil
}

// VarDecls -> VarDecl*
//
// Declarations share the prefix "Type id" with method declarations and, when
// the type is a class name, the prefix "id" with statements. Each declaration
// is parsed speculatively and rolled back as soon as the input diverges.
func (p *Parser) parseVarDecls() ([]*ast.Declaration, error) {
	var decls []*ast.Declaration
	for p.cur().Kind.IsType() || p.check(TokenIdent) {
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if decl == nil {
			break
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// VarDecl -> Type id ;
//
// A nil declaration with a nil error means the tokens belong to something
// else and the cursor has been rolled back.
func (p *Parser) parseVarDecl() (*ast.Declaration, error) {
	p.cursor.BeginSpeculation()
	start := p.cur()
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	switch p.cur().Kind {
	case TokenIdent:
		name := p.cur()
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.cur().Kind {
		case TokenSemicolon:
			p.cursor.Commit()
			decl := &ast.Declaration{Name: name.Literal, Type: typ, Line: name.Line}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return decl, nil
		case TokenLParen:
			// a method declaration
			p.cursor.Rollback()
			return nil, nil
		default:
			return nil, p.unexpected("';' or '('")
		}
	case TokenMain:
		p.cursor.Rollback()
		return nil, nil
	default:
		if start.Kind == TokenIdent {
			// a statement starting with an identifier
			p.cursor.Rollback()
			return nil, nil
		}
		return nil, p.unexpected("identifier")
	}
}

// FormalList -> Type id (, Type id)*
//
// The type must be parsed before the name token is read: parseType advances
// the cursor.
func (p *Parser) parseFormals() ([]*ast.Declaration, error) {
	var formals []*ast.Declaration
	if !p.cur().Kind.IsType() && !p.check(TokenIdent) {
		return formals, nil
	}
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		formals = append(formals, &ast.Declaration{Name: name.Literal, Type: typ, Line: name.Line})
		if !p.check(TokenComma) {
			return formals, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// MethodDecl -> Type (id | main) ( FormalList ) { VarDecl* Statement* (return Exp ;)? }
func (p *Parser) parseMethodDecl() (*ast.Method, error) {
	line := p.cur().Line
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var name string
	switch tok := p.cur(); tok.Kind {
	case TokenIdent:
		name = tok.Literal
	case TokenMain:
		name = ast.EntryMethodName
	default:
		return nil, p.unexpected("method name")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	formals, err := p.parseFormals()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	method := &ast.Method{
		Name:       name,
		ReturnType: retType,
		Formals:    formals,
		Line:       line,
	}
	if err := p.parseMethodBody(method); err != nil {
		return nil, err
	}
	return method, nil
}

// MainMethod -> Type main ( String [ ] id ) { VarDecl* Statement* (return Exp ;)? }
func (p *Parser) parseMainMethod() (*ast.Method, error) {
	line := p.cur().Line
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenMain); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	args, err := p.parseMainArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	method := &ast.Method{
		Name:       ast.EntryMethodName,
		ReturnType: retType,
		Formals:    []*ast.Declaration{args},
		Line:       line,
	}
	if err := p.parseMethodBody(method); err != nil {
		return nil, err
	}
	return method, nil
}

func (p *Parser) parseMainArgs() (*ast.Declaration, error) {
	if !p.check(TokenString) {
		return nil, p.unexpected("String[] in main formal args list")
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if typ != (ast.ArrayType{Elem: ast.StringType{}}) {
		return nil, p.unexpected("String[] in main formal args list")
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	return &ast.Declaration{Name: name.Literal, Type: typ, Line: name.Line}, nil
}

// parseMethodBody reads { VarDecl* Statement* (return Exp ;)? } into m.
// A return is required exactly when the method is not void; void methods get
// an implicit null return value.
func (p *Parser) parseMethodBody(m *ast.Method) error {
	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}
	var err error
	if m.Locals, err = p.parseVarDecls(); err != nil {
		return err
	}
	if m.Body, err = p.parseStatements(); err != nil {
		return err
	}

	if ast.IsVoid(m.ReturnType) {
		m.Return = &ast.NullLit{Line: p.cur().Line}
	} else {
		if _, err := p.expect(TokenReturn); err != nil {
			return err
		}
		if m.Return, err = p.parseExpr(); err != nil {
			return err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return err
		}
	}

	_, err = p.expect(TokenRBrace)
	return err
}

func startsStatement(kind TokenKind) bool {
	switch kind {
	case TokenLBrace, TokenIf, TokenWhile, TokenIdent,
		TokenWrite, TokenWriteLine, TokenWriteFormat:
		return true
	}
	return false
}

// Statements -> Statement*
func (p *Parser) parseStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for startsStatement(p.cur().Kind) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Statement -> { Statement* }
//
//	-> if ( Exp ) Statement (else Statement)?
//	-> while ( Exp ) Statement
//	-> (write | writeln | writef) Exp ;
//	-> id = Exp ;
//	-> id ++ ;
//	-> id -- ;
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenWrite:
		return p.parseWrite(ast.ModeWrite)
	case TokenWriteLine:
		return p.parseWrite(ast.ModeWriteLine)
	case TokenWriteFormat:
		return p.parseWrite(ast.ModeWriteFormat)
	case TokenIdent:
		return p.parseIdentStatement()
	}
	return nil, p.unexpected("statement")
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	line := p.cur().Line
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Line: line}, nil
}

func (p *Parser) parseCondition() (ast.Expr, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.cur().Line
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond, Then: then, Line: line}
	if p.check(TokenElse) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseStatement(); err != nil {
			return nil, err
		}
	} else {
		stmt.Else = &ast.EmptyStmt{Line: line}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	line := p.cur().Line
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Line: line}, nil
}

// parseWrite accepts both write(x); and write x; since a parenthesized
// expression is itself an expression.
func (p *Parser) parseWrite(mode ast.WriteMode) (ast.Stmt, error) {
	line := p.cur().Line
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Write{Value: value, Mode: mode, Line: line}, nil
}

func (p *Parser) parseIdentStatement() (ast.Stmt, error) {
	id := p.cur()
	if err := p.advance(); err != nil {
		return nil, err
	}

	var stmt ast.Stmt
	switch p.cur().Kind {
	case TokenAssign:
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt = &ast.Assign{Name: id.Literal, Value: value, Line: id.Line}
	case TokenIncrement:
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt = &ast.IncDec{Name: id.Literal, Dir: ast.Increment, Line: id.Line}
	case TokenDecrement:
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt = &ast.IncDec{Name: id.Literal, Dir: ast.Decrement, Line: id.Line}
	default:
		return nil, p.unexpected("assign or increment or decrement")
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Exp -> LtExp (&& LtExp)*
func (p *Parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseLessThan()
	if err != nil {
		return nil, err
	}
	for p.check(TokenAnd) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLessThan()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.And, Left: left, Right: right, Line: left.Pos()}
	}
	return left, nil
}

// LtExp -> AddSubExp (< AddSubExp)*
func (p *Parser) parseLessThan() (ast.Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.check(TokenLT) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.Less, Left: left, Right: right, Line: left.Pos()}
	}
	return left, nil
}

// AddSubExp -> MulExp ((+ | -) MulExp)*
//
// Subtracting an integer literal is built as adding its negation, so a - 3
// and a + -3 produce the same tree.
func (p *Parser) parseAddSub() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := ast.Add
		if p.check(TokenMinus) {
			op = ast.Sub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		if lit, ok := right.(*ast.IntLit); ok && op == ast.Sub {
			op = ast.Add
			right = &ast.IntLit{Value: -lit.Value, Line: lit.Line}
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Line: left.Pos()}
	}
	return left, nil
}

// MulExp -> UnaryExp (* UnaryExp)*
func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(TokenStar) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.Mul, Left: left, Right: right, Line: left.Pos()}
	}
	return left, nil
}

// UnaryExp -> !* (- UnaryExp | PostfixExp)
//
// A run of ! keeps only its parity. Negating an integer literal folds into
// the literal; any other operand becomes 0 - operand.
func (p *Parser) parseUnary() (ast.Expr, error) {
	nots := 0
	for p.check(TokenNot) {
		nots++
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var expr ast.Expr
	if p.check(TokenMinus) {
		line := p.cur().Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*ast.IntLit); ok {
			expr = &ast.IntLit{Value: -lit.Value, Line: line}
		} else {
			expr = &ast.Binary{Op: ast.Sub, Left: &ast.IntLit{Value: 0, Line: line}, Right: operand, Line: line}
		}
	} else {
		var err error
		if expr, err = p.parsePostfix(); err != nil {
			return nil, err
		}
	}

	if nots%2 == 1 {
		expr = &ast.Not{X: expr, Line: expr.Pos()}
	}
	return expr, nil
}

// PostfixExp -> AtomExp (. id ( ExpList ))*
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.check(TokenDot) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		args, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		expr = &ast.Call{Receiver: expr, Name: name.Literal, Args: args, Line: name.Line}
	}
	return expr, nil
}

// ExpList -> (Exp (, Exp)*)?
func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var list []ast.Expr
	if p.check(TokenRParen) {
		return list, nil
	}
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.check(TokenComma) {
			return list, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// AtomExp -> ( Exp ) | number | string | true | false | null | this | id | new id ( )
func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.cur()
	var expr ast.Expr
	switch tok.Kind {
	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenNew:
		if err := p.advance(); err != nil {
			return nil, err
		}
		class, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &ast.New{Class: class.Literal, Line: tok.Line}, nil
	case TokenNumber:
		value, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, p.unexpected("an integer literal within 32 bits")
		}
		expr = &ast.IntLit{Value: int32(value), Line: tok.Line}
	case TokenStringLiteral:
		expr = &ast.StringLit{Value: tok.Literal, Line: tok.Line}
	case TokenTrue:
		expr = &ast.TrueLit{Line: tok.Line}
	case TokenFalse:
		expr = &ast.FalseLit{Line: tok.Line}
	case TokenNull:
		expr = &ast.NullLit{Line: tok.Line}
	case TokenThis:
		expr = &ast.This{Line: tok.Line}
	case TokenIdent:
		expr = &ast.Ident{Name: tok.Literal, Line: tok.Line}
	default:
		return nil, p.unexpected("expression")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return expr, nil
}
