package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renderings approximate the source form of a value. They are
// for diagnostics and test output; canonical serialization belongs to
// the code generator.

func (*Null) String() string { return "null" }

func (k *Keyword) String() string { return k.Name }

func (v *Variable) String() string { return "$" + v.Name }

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

func (c *Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (t Text) String() string { return string(t) }

func (s *String) String() string {
	var sb strings.Builder
	sb.WriteString(s.Quote)
	for _, part := range s.Parts {
		sb.WriteString(part.String())
	}
	sb.WriteString(s.Quote)
	return sb.String()
}

func (i *Interpolation) String() string {
	return "#{" + i.Value.String() + "}"
}

func (l *List) String() string {
	sep := l.Sep
	if sep == "," {
		sep = ", "
	} else if sep == "" {
		sep = " "
	}
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.String()
	}
	return strings.Join(items, sep)
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range m.Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Keys[i].String())
		sb.WriteString(": ")
		sb.WriteString(m.Values[i].String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *InfixExpression) String() string {
	s := e.Left.String() + " " + e.Op + " " + e.Right.String()
	if e.InParens {
		return "(" + s + ")"
	}
	return s
}

func (e *PrefixExpression) String() string {
	op := e.Op
	if op == "not" {
		op = "not "
	}
	return op + e.Operand.String()
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		s := a.Value.String()
		if a.Name != "" {
			s = "$" + a.Name + ": " + s
		}
		if a.Splat {
			s += "..."
		}
		args[i] = s
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

func (f *RawFunction) String() string {
	return f.Name + "(" + f.Raw.String() + ")"
}

func (m *MediaType) String() string {
	parts := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func (m *MediaExpression) String() string {
	if m.Value == nil {
		return "(" + m.Feature.String() + ")"
	}
	return "(" + m.Feature.String() + ": " + m.Value.String() + ")"
}

// String joins the selector's parts back into source-like text.
func (s Selector) String() string {
	var sb strings.Builder
	for _, part := range s {
		sb.WriteString(part.String())
	}
	return sb.String()
}
