package fixed

import (
	"testing"
)

func TestFixedPoint_New(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		scale int
		want  string
	}{
		{"zero", 0, 0, "0"},
		{"positive", 123, 0, "123"},
		{"negative", -456, 0, "-456"},
		{"with scale", 123, 2, "1.23"},
		{"negative with scale", -456, 3, "-0.456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.value, tt.scale)
			if got.String() != tt.want {
				t.Errorf("New(%d, %d) = %s; want %s", tt.value, tt.scale, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	a := FromFloat64(10.5)
	b := FromFloat64(2.5)

	if got := a.Add(b).String(); got != "13" {
		t.Errorf("Add = %s; want 13", got)
	}
	if got := a.Sub(b).String(); got != "8" {
		t.Errorf("Sub = %s; want 8", got)
	}
	if got := a.Mul(b).String(); got != "26.25" {
		t.Errorf("Mul = %s; want 26.25", got)
	}
	if got := a.Div(b).String(); got != "4.2" {
		t.Errorf("Div = %s; want 4.2", got)
	}
	if got := b.Neg().String(); got != "-2.5" {
		t.Errorf("Neg = %s; want -2.5", got)
	}
	if got := b.Neg().Abs().String(); got != "2.5" {
		t.Errorf("Abs = %s; want 2.5", got)
	}
}

func TestFixedPoint_Comparisons(t *testing.T) {
	a := FromFloat64(1.1)
	b := FromFloat64(1.2)

	if !a.Lt(b) || !b.Gt(a) || !a.Lte(a) || !a.Gte(a) || !a.Eq(a) {
		t.Error("comparison invariants violated")
	}
	if a.Eq(b) {
		t.Error("distinct points compare equal")
	}
}

func TestFixedPoint_Sign(t *testing.T) {
	if Zero.Sign() != 0 || One.Sign() != 1 || NegOne.Sign() != -1 {
		t.Error("sign invariants violated")
	}
	if !NegOne.IsNeg() || !One.IsPos() || !Zero.IsZero() {
		t.Error("predicate invariants violated")
	}
}

func TestFixedPoint_QuantizeDown(t *testing.T) {
	tests := []struct {
		name string
		p    string
		step string
		want string
	}{
		{"exact multiple", "10", "0.5", "10"},
		{"rounds down", "10.34", "0.1", "10.3"},
		{"lot step", "3.72", "0.25", "3.5"},
		{"zero step untouched", "10.34", "0", "10.34"},
		{"smaller than step", "0.07", "0.1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustFromString(tt.p).QuantizeDown(MustFromString(tt.step))
			if !got.Eq(MustFromString(tt.want)) {
				t.Errorf("QuantizeDown(%s, %s) = %s; want %s", tt.p, tt.step, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_QuantizeUp(t *testing.T) {
	tests := []struct {
		name string
		p    string
		step string
		want string
	}{
		{"exact multiple", "10", "0.5", "10"},
		{"rounds up", "10.31", "0.1", "10.4"},
		{"zero step untouched", "10.31", "0", "10.31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustFromString(tt.p).QuantizeUp(MustFromString(tt.step))
			if !got.Eq(MustFromString(tt.want)) {
				t.Errorf("QuantizeUp(%s, %s) = %s; want %s", tt.p, tt.step, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_MinMaxClamp(t *testing.T) {
	a := One
	b := Two

	if !Min(a, b).Eq(a) || !Max(a, b).Eq(b) {
		t.Error("min/max invariants violated")
	}
	if !ClampPoint(Ten, a, b).Eq(b) {
		t.Error("clamp above upper bound failed")
	}
	if !ClampPoint(NegOne, a, b).Eq(a) {
		t.Error("clamp below lower bound failed")
	}
}
