// Package ast defines the syntax tree produced by the Cva parser.
//
// The tree is closed: expressions implement Expr, statements implement Stmt,
// and both are dispatched through ExprVisitor and StmtVisitor, which have one
// method per concrete node. A pass that implements the visitors fails to
// compile when a node kind is added, so no kind can be skipped silently.
//
// Nodes are owned by exactly one parent. The only mutation the tree sees after
// parsing is the optimizer removing entries from Method.Locals.
//
//	Program
//	├── Entry (free-standing main, or the name of the class declaring main)
//	└── Class*
//	    ├── Declaration* (fields)
//	    └── Method*
//	        ├── Declaration* (formals, locals)
//	        ├── Stmt*
//	        └── Expr (return value; implicit null for void methods)
package ast
