package ast

import "testing"

func TestValueStrings(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{&Null{}, "null"},
		{&Keyword{Name: "red"}, "red"},
		{&Variable{Name: "x"}, "$x"},
		{&Number{Value: 1.5, Unit: "px"}, "1.5px"},
		{&Number{Value: 10}, "10"},
		{&Color{R: 0xff, G: 0x00, B: 0x33}, "#ff0033"},
		{&String{Quote: `"`, Parts: []Value{Text("Arial")}}, `"Arial"`},
		{&Interpolation{Value: &Variable{Name: "c"}}, "#{$c}"},
		{&List{Sep: ",", Items: []Value{&Number{Value: 1}, &Number{Value: 2}}}, "1, 2"},
		{&List{Sep: " ", Items: []Value{&Keyword{Name: "a"}, &Keyword{Name: "b"}}}, "a b"},
		{
			&Map{
				Keys:   []Value{&Keyword{Name: "a"}},
				Values: []Value{&Number{Value: 1}},
			},
			"(a: 1)",
		},
		{
			&InfixExpression{Op: "+", Left: &Number{Value: 1}, Right: &Number{Value: 2}},
			"1 + 2",
		},
		{
			&InfixExpression{Op: "*", Left: &Number{Value: 1}, Right: &Number{Value: 2}, InParens: true},
			"(1 * 2)",
		},
		{&PrefixExpression{Op: "not", Operand: &Keyword{Name: "true"}}, "not true"},
		{&PrefixExpression{Op: "-", Operand: &Number{Value: 5}}, "-5"},
		{
			&FunctionCall{Name: "rgba", Args: []CallArg{
				{Value: &Number{Value: 0}},
				{Name: "alpha", Value: &Number{Value: 0.5}},
			}},
			"rgba(0, $alpha: 0.5)",
		},
		{
			&RawFunction{Name: "calc", Raw: &String{Parts: []Value{Text("100% - 10px")}}},
			"calc(100% - 10px)",
		},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() wrong. expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestSelectorString(t *testing.T) {
	sel := Selector{
		Text("&"), Text(":"), Text("hover"), Text(" "), Text("."),
		&Interpolation{Value: &Variable{Name: "cls"}},
	}
	want := "&:hover .#{$cls}"
	if got := sel.String(); got != want {
		t.Errorf("Selector.String() wrong. expected=%q, got=%q", want, got)
	}
}

func TestBlockKindString(t *testing.T) {
	tests := []struct {
		kind BlockKind
		want string
	}{
		{BlockRule, "block"},
		{BlockMixin, "mixin"},
		{BlockNestedProperty, "nestedprop"},
		{BlockDirective, "directive"},
		{BlockKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("BlockKind.String() wrong. expected=%q, got=%q", tt.want, got)
		}
	}
}
