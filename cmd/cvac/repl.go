package main

import (
	"strings"

	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/parser"
)

// programKeywords start input that is parsed as a whole program.
var programKeywords = []string{"class", "package", "call", "void"}

func startsProgram(src string) bool {
	fields := strings.Fields(src)
	if len(fields) == 0 {
		return false
	}
	for _, kw := range programKeywords {
		if fields[0] == kw {
			return true
		}
	}
	return false
}

// parseInput parses REPL input as a program, an expression or a statement.
// When neither an expression nor a statement parses, the error is
// incomplete if either attempt ran out of input; otherwise the statement
// error is reported for input ending in ';' or '}' and the expression error
// for anything else.
func parseInput(src string) (ast.Node, error) {
	if startsProgram(src) {
		prog, err := parser.ParseProgram([]byte(src), parser.WithFile(replName))
		if err != nil {
			return nil, err
		}
		return prog, nil
	}

	expr, exprErr := parser.ParseExpression(src, parser.WithFile(replName))
	if exprErr == nil {
		return expr, nil
	}
	stmt, stmtErr := parser.ParseStatement(src, parser.WithFile(replName))
	if stmtErr == nil {
		return stmt, nil
	}

	switch {
	case parser.IsIncomplete(exprErr):
		return nil, exprErr
	case parser.IsIncomplete(stmtErr):
		return nil, stmtErr
	}
	trimmed := strings.TrimSpace(src)
	if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
		return nil, stmtErr
	}
	return nil, exprErr
}
