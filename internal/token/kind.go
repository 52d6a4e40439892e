package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	EqEq             // ==
	Bang             // !
	BangEq           // !=
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	Shl              // <<
	Shr              // >>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	Question         // ?
	QuestionQuestion // ??
	Colon            // :
	ColonColon       // ::
	ColonAssign      // :=
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	DotDot           // ..
	DotDotEq         // ..=
	DotDotDot        // ...
	Arrow            // ->
	FatArrow         // =>
	At               // @
	Hash             // #
	Dollar           // $

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	StringLit:        "StringLit",
	Plus:             "Plus",
	Minus:            "Minus",
	Star:             "Star",
	Slash:            "Slash",
	Percent:          "Percent",
	Assign:           "Assign",
	PlusAssign:       "PlusAssign",
	MinusAssign:      "MinusAssign",
	StarAssign:       "StarAssign",
	SlashAssign:      "SlashAssign",
	PercentAssign:    "PercentAssign",
	EqEq:             "EqEq",
	Bang:             "Bang",
	BangEq:           "BangEq",
	Lt:               "Lt",
	LtEq:             "LtEq",
	Gt:               "Gt",
	GtEq:             "GtEq",
	Shl:              "Shl",
	Shr:              "Shr",
	Amp:              "Amp",
	Pipe:             "Pipe",
	Caret:            "Caret",
	Tilde:            "Tilde",
	AndAnd:           "AndAnd",
	OrOr:             "OrOr",
	Question:         "Question",
	QuestionQuestion: "QuestionQuestion",
	Colon:            "Colon",
	ColonColon:       "ColonColon",
	ColonAssign:      "ColonAssign",
	Semicolon:        "Semicolon",
	Comma:            "Comma",
	Dot:              "Dot",
	DotDot:           "DotDot",
	DotDotEq:         "DotDotEq",
	DotDotDot:        "DotDotDot",
	Arrow:            "Arrow",
	FatArrow:         "FatArrow",
	At:               "At",
	Hash:             "Hash",
	Dollar:           "Dollar",
	LParen:           "LParen",
	RParen:           "RParen",
	LBrace:           "LBrace",
	RBrace:           "RBrace",
	LBracket:         "LBracket",
	RBracket:         "RBracket",
}

var kindLiterals = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=", PercentAssign: "%=",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Shl: "<<", Shr: ">>", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", AndAnd: "&&", OrOr: "||",
	Question: "?", QuestionQuestion: "??", Colon: ":", ColonColon: "::", ColonAssign: ":=",
	Semicolon: ";", Comma: ",", Dot: ".", DotDot: "..", DotDotEq: "..=", DotDotDot: "...",
	Arrow: "->", FatArrow: "=>", At: "@", Hash: "#", Dollar: "$",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Literal returns the fixed spelling of punctuation kinds and "" for the rest.
func (k Kind) Literal() string {
	return kindLiterals[k]
}

// Display returns the vocabulary name used in syntax error messages:
// the quoted spelling for punctuation, "<EOF>" for EOF, the kind name otherwise.
func (k Kind) Display() string {
	if k == EOF {
		return "<EOF>"
	}
	if lit, ok := kindLiterals[k]; ok {
		return "'" + lit + "'"
	}
	return k.String()
}

// Closer returns the closing delimiter for an opening one.
func (k Kind) Closer() (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBrace:
		return RBrace, true
	case LBracket:
		return RBracket, true
	default:
		return Invalid, false
	}
}

// IsOpener reports whether k opens a delimited group.
func (k Kind) IsOpener() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloser reports whether k closes a delimited group.
func (k Kind) IsCloser() bool {
	return k == RParen || k == RBrace || k == RBracket
}
