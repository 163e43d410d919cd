package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/krizos/scss-go/pkg/ast"
)

// parseValue is a test helper running ParseValue with a fresh parser.
func parseValue(t *testing.T, input string) ast.Value {
	t.Helper()
	v, err := New("test.scss", 0).ParseValue(input)
	if err != nil {
		t.Fatalf("ParseValue(%q) error: %v", input, err)
	}
	return v
}

func TestNumberLiteral(t *testing.T) {
	tests := []struct {
		input string
		value float64
		unit  string
	}{
		{"1px", 1, "px"},
		{"12.5em", 12.5, "em"},
		{".5em", 0.5, "em"},
		{"100%", 100, "%"},
		{"42", 42, ""},
	}

	for _, tt := range tests {
		v := parseValue(t, tt.input)
		num, ok := v.(*ast.Number)
		if !ok {
			t.Fatalf("value for %q is not *ast.Number. got=%T", tt.input, v)
		}
		if num.Value != tt.value {
			t.Errorf("number value wrong for %q. expected=%v, got=%v", tt.input, tt.value, num.Value)
		}
		if num.Unit != tt.unit {
			t.Errorf("number unit wrong for %q. expected=%q, got=%q", tt.input, tt.unit, num.Unit)
		}
	}
}

func TestColorLiteral(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
	}{
		{"#102030", 0x10, 0x20, 0x30},
		{"#fff", 0xff, 0xff, 0xff},
		{"#a1b", 0xaa, 0x11, 0xbb},
	}

	for _, tt := range tests {
		v := parseValue(t, tt.input)
		c, ok := v.(*ast.Color)
		if !ok {
			t.Fatalf("value for %q is not *ast.Color. got=%T", tt.input, v)
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("color channels wrong for %q. expected=(%d,%d,%d), got=(%d,%d,%d)",
				tt.input, tt.r, tt.g, tt.b, c.R, c.G, c.B)
		}
	}
}

func TestNullKeyword(t *testing.T) {
	if _, ok := parseValue(t, "null").(*ast.Null); !ok {
		t.Error("null did not parse to *ast.Null")
	}
	if kw, ok := parseValue(t, "nullable").(*ast.Keyword); !ok || kw.Name != "nullable" {
		t.Error("nullable should stay a keyword")
	}
}

func TestPrecedenceClimb(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{
			"1 + 2 * 3",
			&ast.InfixExpression{
				Op:   "+",
				Left: &ast.Number{Value: 1},
				Right: &ast.InfixExpression{
					Op: "*", Left: &ast.Number{Value: 2}, Right: &ast.Number{Value: 3},
					SpaceBefore: true, SpaceAfter: true,
				},
				SpaceBefore: true, SpaceAfter: true,
			},
		},
		{
			"1 * 2 + 3",
			&ast.InfixExpression{
				Op: "+",
				Left: &ast.InfixExpression{
					Op: "*", Left: &ast.Number{Value: 1}, Right: &ast.Number{Value: 2},
					SpaceBefore: true, SpaceAfter: true,
				},
				Right:       &ast.Number{Value: 3},
				SpaceBefore: true, SpaceAfter: true,
			},
		},
		{
			"$a and $b or $c",
			&ast.InfixExpression{
				Op: "or",
				Left: &ast.InfixExpression{
					Op: "and", Left: &ast.Variable{Name: "a"}, Right: &ast.Variable{Name: "b"},
					SpaceBefore: true, SpaceAfter: true,
				},
				Right:       &ast.Variable{Name: "c"},
				SpaceBefore: true, SpaceAfter: true,
			},
		},
		{
			"1 + 2 * 3 * 4",
			&ast.InfixExpression{
				Op:   "+",
				Left: &ast.Number{Value: 1},
				Right: &ast.InfixExpression{
					Op: "*",
					Left: &ast.InfixExpression{
						Op: "*", Left: &ast.Number{Value: 2}, Right: &ast.Number{Value: 3},
						SpaceBefore: true, SpaceAfter: true,
					},
					Right:       &ast.Number{Value: 4},
					SpaceBefore: true, SpaceAfter: true,
				},
				SpaceBefore: true, SpaceAfter: true,
			},
		},
		{
			"$x <=> $y",
			&ast.InfixExpression{
				Op: "<=>", Left: &ast.Variable{Name: "x"}, Right: &ast.Variable{Name: "y"},
				SpaceBefore: true, SpaceAfter: true,
			},
		},
	}

	for _, tt := range tests {
		got := parseValue(t, tt.input)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("tree mismatch for %q (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestOperatorKeywordsCaseInsensitive(t *testing.T) {
	v := parseValue(t, "$a AND $b")
	exp, ok := v.(*ast.InfixExpression)
	if !ok {
		t.Fatalf("value is not *ast.InfixExpression. got=%T", v)
	}
	if exp.Op != "and" {
		t.Errorf("operator not normalized. expected=%q, got=%q", "and", exp.Op)
	}
}

func TestUnaryMinusDisambiguation(t *testing.T) {
	// space before but not after the minus: a sign, not a subtraction
	v := parseValue(t, "1 -2")
	list, ok := v.(*ast.List)
	if !ok {
		t.Fatalf("1 -2 did not parse to a space list. got=%T", v)
	}
	if list.Sep != " " || len(list.Items) != 2 {
		t.Fatalf("1 -2 list shape wrong. got sep=%q len=%d", list.Sep, len(list.Items))
	}
	pre, ok := list.Items[1].(*ast.PrefixExpression)
	if !ok || pre.Op != "-" {
		t.Fatalf("second item is not a negation. got=%T", list.Items[1])
	}

	// symmetric whitespace: subtraction
	if exp, ok := parseValue(t, "1 - 2").(*ast.InfixExpression); !ok || exp.Op != "-" {
		t.Errorf("1 - 2 should be a subtraction")
	}

	// no whitespace at all: subtraction
	if exp, ok := parseValue(t, "1-2").(*ast.InfixExpression); !ok || exp.Op != "-" {
		t.Errorf("1-2 should be a subtraction")
	}

	// a variable on the right stays a subtraction even without space
	exp, ok := parseValue(t, "$a -$b").(*ast.InfixExpression)
	if !ok || exp.Op != "-" {
		t.Fatalf("$a -$b should be a subtraction. got=%T", exp)
	}
	if !exp.SpaceBefore || exp.SpaceAfter {
		t.Errorf("whitespace flags wrong. expected before=true after=false, got before=%v after=%v",
			exp.SpaceBefore, exp.SpaceAfter)
	}
}

func TestNegativeNumber(t *testing.T) {
	pre, ok := parseValue(t, "-5px").(*ast.PrefixExpression)
	if !ok || pre.Op != "-" {
		t.Fatalf("-5px is not a negation. got=%T", pre)
	}
	num, ok := pre.Operand.(*ast.Number)
	if !ok || num.Value != 5 || num.Unit != "px" {
		t.Errorf("negation operand wrong. got=%v", pre.Operand)
	}
}

func TestNotExpressions(t *testing.T) {
	pre, ok := parseValue(t, "not true").(*ast.PrefixExpression)
	if !ok || pre.Op != "not" {
		t.Fatalf("not true is not a unary not. got=%T", pre)
	}
	if kw, ok := pre.Operand.(*ast.Keyword); !ok || kw.Name != "true" {
		t.Errorf("operand wrong. got=%v", pre.Operand)
	}

	if pre, ok := parseValue(t, "not($x)").(*ast.PrefixExpression); !ok || pre.Op != "not" {
		t.Errorf("not($x) is not a unary not. got=%T", pre)
	}

	// `notice` must remain a keyword
	if kw, ok := parseValue(t, "notice").(*ast.Keyword); !ok || kw.Name != "notice" {
		t.Errorf("notice should stay a keyword")
	}
}

func TestParenValueSetsInParens(t *testing.T) {
	exp, ok := parseValue(t, "(1 + 2)").(*ast.InfixExpression)
	if !ok {
		t.Fatalf("(1 + 2) is not an expression. got=%T", exp)
	}
	if !exp.InParens {
		t.Error("expression inside parens should have InParens set")
	}

	exp, ok = parseValue(t, "1 + 2").(*ast.InfixExpression)
	if !ok || exp.InParens {
		t.Error("expression outside parens should not have InParens set")
	}
}

func TestListParsing(t *testing.T) {
	// empty list
	list, ok := parseValue(t, "()").(*ast.List)
	if !ok || len(list.Items) != 0 {
		t.Fatalf("() did not parse to an empty list. got=%T", list)
	}

	// parenthesized comma list
	list, ok = parseValue(t, "(a, b, c)").(*ast.List)
	if !ok || list.Sep != "," || len(list.Items) != 3 {
		t.Fatalf("(a, b, c) shape wrong. got=%v", list)
	}

	// single value flattens
	if _, ok := parseValue(t, "red").(*ast.Keyword); !ok {
		t.Error("single value should flatten to the value itself")
	}
}

func TestMapLiteral(t *testing.T) {
	m, ok := parseValue(t, "(a: 1, b: 2)").(*ast.Map)
	if !ok {
		t.Fatalf("value is not *ast.Map. got=%T", parseValue(t, "(a: 1, b: 2)"))
	}

	want := &ast.Map{
		Keys:   []ast.Value{&ast.Keyword{Name: "a"}, &ast.Keyword{Name: "b"}},
		Values: []ast.Value{&ast.Number{Value: 1}, &ast.Number{Value: 2}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestStringLiteral(t *testing.T) {
	s, ok := parseValue(t, `"Arial"`).(*ast.String)
	if !ok {
		t.Fatalf("value is not *ast.String")
	}
	if s.Quote != `"` {
		t.Errorf("quote wrong. expected=%q, got=%q", `"`, s.Quote)
	}
	if len(s.Parts) != 1 || s.Parts[0] != ast.Text("Arial") {
		t.Errorf("parts wrong. got=%v", s.Parts)
	}
}

func TestStringEscapes(t *testing.T) {
	s, ok := parseValue(t, `"a\"b"`).(*ast.String)
	if !ok {
		t.Fatalf("value is not *ast.String")
	}
	want := []ast.Value{ast.Text("a"), ast.Text(`\`), ast.Text(`"`), ast.Text("b")}
	if diff := cmp.Diff(want, s.Parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestStringInterpolation(t *testing.T) {
	s, ok := parseValue(t, `"a#{$x}b"`).(*ast.String)
	if !ok {
		t.Fatalf("value is not *ast.String")
	}
	if len(s.Parts) != 3 {
		t.Fatalf("parts count wrong. expected=3, got=%d", len(s.Parts))
	}
	inter, ok := s.Parts[1].(*ast.Interpolation)
	if !ok {
		t.Fatalf("middle part is not an interpolation. got=%T", s.Parts[1])
	}
	if v, ok := inter.Value.(*ast.Variable); !ok || v.Name != "x" {
		t.Errorf("interpolated value wrong. got=%v", inter.Value)
	}
}

func TestInterpolationWhitespaceFlags(t *testing.T) {
	list, ok := parseValue(t, "a #{$x}b").(*ast.List)
	if !ok {
		t.Fatalf("value is not a list. got=%T", parseValue(t, "a #{$x}b"))
	}
	inter, ok := list.Items[1].(*ast.Interpolation)
	if !ok {
		t.Fatalf("second item is not an interpolation. got=%T", list.Items[1])
	}
	if !inter.LeftWS {
		t.Error("LeftWS should be set: a space precedes the interpolation")
	}
	if inter.RightWS {
		t.Error("RightWS should not be set: a word follows the interpolation")
	}
}

func TestFunctionCall(t *testing.T) {
	fn, ok := parseValue(t, "rgba(255, 0, 0, 0.5)").(*ast.FunctionCall)
	if !ok {
		t.Fatalf("value is not *ast.FunctionCall")
	}
	if fn.Name != "rgba" {
		t.Errorf("name wrong. expected=%q, got=%q", "rgba", fn.Name)
	}
	if len(fn.Args) != 4 {
		t.Fatalf("argument count wrong. expected=4, got=%d", len(fn.Args))
	}
}

func TestFunctionCallKeywordAndSplatArgs(t *testing.T) {
	fn, ok := parseValue(t, "foo($a: 1, $rest...)").(*ast.FunctionCall)
	if !ok {
		t.Fatalf("value is not *ast.FunctionCall")
	}
	if fn.Args[0].Name != "a" {
		t.Errorf("first arg keyword wrong. expected=%q, got=%q", "a", fn.Args[0].Name)
	}
	if !fn.Args[1].Splat {
		t.Error("second arg should carry the splat flag")
	}
	if v, ok := fn.Args[1].Value.(*ast.Variable); !ok || v.Name != "rest" {
		t.Errorf("second arg value wrong. got=%v", fn.Args[1].Value)
	}
}

func TestEmptyFunctionCall(t *testing.T) {
	fn, ok := parseValue(t, "foo()").(*ast.FunctionCall)
	if !ok {
		t.Fatalf("value is not *ast.FunctionCall")
	}
	if len(fn.Args) != 0 {
		t.Errorf("argument count wrong. expected=0, got=%d", len(fn.Args))
	}
}

func TestCalcStaysRaw(t *testing.T) {
	for _, input := range []string{"calc(100% - 10px)", "-webkit-calc(100% - 10px)", "expression(document.body.clientWidth)"} {
		fn, ok := parseValue(t, input).(*ast.RawFunction)
		if !ok {
			t.Fatalf("%q did not parse to *ast.RawFunction. got=%T", input, parseValue(t, input))
		}
		if len(fn.Raw.Parts) == 0 {
			t.Errorf("raw body of %q is empty", input)
		}
		if _, ok := fn.Raw.Parts[0].(ast.Text); !ok {
			t.Errorf("raw body of %q is not literal text. got=%T", input, fn.Raw.Parts[0])
		}
	}
}

func TestAlphaFilterSyntax(t *testing.T) {
	fn, ok := parseValue(t, "alpha(opacity=30)").(*ast.RawFunction)
	if !ok {
		t.Fatalf("value is not *ast.RawFunction. got=%T", parseValue(t, "alpha(opacity=30)"))
	}
	if fn.Name != "alpha" {
		t.Errorf("name wrong. got=%q", fn.Name)
	}
	if fn.Raw.Parts[0] != ast.Text("opacity=") {
		t.Errorf("first raw part wrong. got=%v", fn.Raw.Parts[0])
	}
	if num, ok := fn.Raw.Parts[1].(*ast.Number); !ok || num.Value != 30 {
		t.Errorf("second raw part wrong. got=%v", fn.Raw.Parts[1])
	}

	// plain alpha() calls still get a parsed argument list
	if _, ok := parseValue(t, "alpha(0.5)").(*ast.FunctionCall); !ok {
		t.Error("alpha(0.5) should parse as a regular call")
	}
}

func TestProgid(t *testing.T) {
	s, ok := parseValue(t, "progid:DXImageTransform.Microsoft.Blur(pixelradius=2)").(*ast.String)
	if !ok {
		t.Fatalf("value is not *ast.String")
	}
	if s.Quote != "" {
		t.Errorf("progid string should be unquoted")
	}
	if s.Parts[0] != ast.Text("progid:") {
		t.Errorf("first part wrong. got=%v", s.Parts[0])
	}
	if s.String() != "progid:DXImageTransform.Microsoft.Blur(pixelradius=2)" {
		t.Errorf("round trip wrong. got=%q", s.String())
	}
}

func TestURLInValueList(t *testing.T) {
	fn, ok := parseValue(t, "url(foo.css)").(*ast.FunctionCall)
	if !ok {
		t.Fatalf("value is not *ast.FunctionCall. got=%T", parseValue(t, "url(foo.css)"))
	}
	if fn.Name != "url" {
		t.Errorf("name wrong. got=%q", fn.Name)
	}
	if len(fn.Args) != 1 {
		t.Fatalf("argument count wrong. got=%d", len(fn.Args))
	}
	raw, ok := fn.Args[0].Value.(*ast.String)
	if !ok || raw.Parts[0] != ast.Text("foo.css") {
		t.Errorf("raw url argument wrong. got=%v", fn.Args[0].Value)
	}
}

func TestFontShorthandSlash(t *testing.T) {
	v := parseValue(t, `12px/1.5 "Arial", sans-serif`)
	want := &ast.List{
		Sep: ",",
		Items: []ast.Value{
			&ast.List{
				Sep: " ",
				Items: []ast.Value{
					&ast.InfixExpression{
						Op:   "/",
						Left: &ast.Number{Value: 12, Unit: "px"},
						Right: &ast.Number{
							Value: 1.5,
						},
					},
					&ast.String{Quote: `"`, Parts: []ast.Value{ast.Text("Arial")}},
				},
			},
			&ast.Keyword{Name: "sans-serif"},
		},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}
