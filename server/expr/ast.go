package expr

import (
	"strings"
)

// Node is a parsed expression tree.
type Node interface {
	String() string
	node()
}

// Number is a numeric literal. Text keeps the literal as written so exact
// conversions (rationals) can be made from it.
type Number struct {
	Text  string
	Value float64
}

// Ident is a variable or constant name.
type Ident struct {
	Name string
}

// Unary is a prefix sign.
type Unary struct {
	Op byte // '+' or '-'
	X  Node
}

// Binary is an infix operation. Op is one of + - * / ^.
type Binary struct {
	Op    byte
	Left  Node
	Right Node
}

// Call is a whitelisted one-argument function application.
type Call struct {
	Func string
	Arg  Node
}

func (*Number) node() {}
func (*Ident) node()  {}
func (*Unary) node()  {}
func (*Binary) node() {}
func (*Call) node()   {}

func (n *Number) String() string { return n.Text }
func (n *Ident) String() string  { return n.Name }

func (n *Unary) String() string {
	return string(n.Op) + "(" + n.X.String() + ")"
}

func (n *Binary) String() string {
	op := string(n.Op)
	if n.Op == '^' {
		op = "**"
	}
	return "(" + n.Left.String() + " " + op + " " + n.Right.String() + ")"
}

func (n *Call) String() string { return n.Func + "(" + n.Arg.String() + ")" }

// Variables returns the free variable names of n in order of first use.
// Known constants are not variables.
func Variables(n Node) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Node)
	walk = func(n Node) {
		switch t := n.(type) {
		case *Ident:
			if _, ok := Constant(t.Name); ok || seen[t.Name] {
				return
			}
			seen[t.Name] = true
			out = append(out, t.Name)
		case *Unary:
			walk(t.X)
		case *Binary:
			walk(t.Left)
			walk(t.Right)
		case *Call:
			walk(t.Arg)
		}
	}
	walk(n)
	return out
}

// Normalize returns the source with whitespace collapsed, used for labels.
func Normalize(src string) string {
	return strings.Join(strings.Fields(src), " ")
}
