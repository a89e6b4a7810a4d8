package parser

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Literals
	TokenIdent
	TokenNumber
	TokenStringLiteral

	// Keywords
	TokenClass
	TokenExtends
	TokenPackage
	TokenCall
	TokenMain
	TokenIf
	TokenElse
	TokenWhile
	TokenWrite
	TokenWriteLine
	TokenWriteFormat
	TokenReturn
	TokenTrue
	TokenFalse
	TokenNull
	TokenThis
	TokenNew

	// Type keywords
	TokenVoid
	TokenByte
	TokenChar
	TokenShort
	TokenInt
	TokenLong
	TokenFloat
	TokenDouble
	TokenBoolean
	TokenString

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenColon
	TokenComma
	TokenDot

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenNot
	TokenAssign
	TokenEQ
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenShl
	TokenShr
	TokenAnd
	TokenOr
	TokenIncrement
	TokenDecrement
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenBitNotAssign
	TokenShlAssign
	TokenShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenIdent:         "Identifier",
	TokenNumber:        "Number",
	TokenStringLiteral: "StringLiteral",
	TokenClass:         "class",
	TokenExtends:       "extends",
	TokenPackage:       "package",
	TokenCall:          "call",
	TokenMain:          "main",
	TokenIf:            "if",
	TokenElse:          "else",
	TokenWhile:         "while",
	TokenWrite:         "write",
	TokenWriteLine:     "writeln",
	TokenWriteFormat:   "writef",
	TokenReturn:        "return",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenThis:          "this",
	TokenNew:           "new",
	TokenVoid:          "void",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenShort:         "short",
	TokenInt:           "int",
	TokenLong:          "long",
	TokenFloat:         "float",
	TokenDouble:        "double",
	TokenBoolean:       "boolean",
	TokenString:        "String",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenColon:         ":",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenBitNot:        "~",
	TokenNot:           "!",
	TokenAssign:        "=",
	TokenEQ:            "==",
	TokenLT:            "<",
	TokenLE:            "<=",
	TokenGT:            ">",
	TokenGE:            ">=",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenArrow:         "->",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenBitNotAssign:  "~=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsType reports whether k starts a type: a primitive keyword or String.
// Identifiers can also name class types but are not included.
func (k TokenKind) IsType() bool {
	return k >= TokenVoid && k <= TokenString
}

type Token struct {
	Kind    TokenKind
	Line    int
	Literal string
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%s %s", t.Kind, t.Literal)
	case TokenStringLiteral:
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"class":   TokenClass,
	"extends": TokenExtends,
	"package": TokenPackage,
	"call":    TokenCall,
	"main":    TokenMain,
	"if":      TokenIf,
	"else":    TokenElse,
	"while":   TokenWhile,
	"write":   TokenWrite,
	"writeln": TokenWriteLine,
	"writef":  TokenWriteFormat,
	"return":  TokenReturn,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"null":    TokenNull,
	"this":    TokenThis,
	"new":     TokenNew,
	"void":    TokenVoid,
	"byte":    TokenByte,
	"char":    TokenChar,
	"short":   TokenShort,
	"int":     TokenInt,
	"long":    TokenLong,
	"float":   TokenFloat,
	"double":  TokenDouble,
	"boolean": TokenBoolean,
	"String":  TokenString,
}

// fixedTokens are the single characters the fallback scanner emits without
// accumulating a word.
var fixedTokens = map[rune]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	';': TokenSemicolon,
	':': TokenColon,
	',': TokenComma,
	'.': TokenDot,
	'!': TokenNot,
}

func LookupKeyword(word string) (TokenKind, bool) {
	kind, ok := keywords[word]
	return kind, ok
}

// Keywords returns the keyword spellings in no particular order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	return words
}
