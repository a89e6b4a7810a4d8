// Package parser turns Cva source text into an *ast.Program.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│ CharSource  │────▶│   Lexer     │────▶│   Cursor    │────▶│   Parser    │
//	│  (runes)    │     │  (tokens)   │     │ (speculate) │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//
// The lexer reads characters with at most two characters of lookahead and
// applies maximal munch, so "<<=" is one token and "+++" is "++" followed by
// "+". Comments and whitespace never reach the parser.
//
// # Speculation
//
// Field and local declarations share prefixes with the constructs that follow
// them:
//
//	int x;        // declaration
//	int f() {}    // method
//	Foo x;        // declaration of class type
//	x = 5;        // statement
//
// The parser marks the cursor before each declaration, reads ahead and either
// commits or rolls back. Marks nest, and tokens are pulled from the lexer
// once; a rollback replays them from the cursor's buffer.
//
// # Errors
//
// Parsing stops at the first error. A *LexError reports characters that do
// not form a token, a *SyntaxError reports the first token that does not fit
// the grammar. IsIncomplete tells whether more input could still succeed.
//
// # Usage
//
//	prog, err := parser.ParseProgram(src, parser.WithFile("Main.cva"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(prog.Entry.Class)
package parser
