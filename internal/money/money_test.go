package money

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustParse(t *testing.T, s string) Amount {
	t.Helper()
	a, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return a
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "integer", input: "10", want: "10.00"},
		{name: "one decimal place", input: "10.5", want: "10.50"},
		{name: "two decimal places", input: "10.55", want: "10.55"},
		{name: "trailing zeros beyond scale", input: "10.5500", want: "10.55"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "negative", input: "-3.33", want: "-3.33"},
		{name: "three decimal places", input: "10.005", wantErr: ErrPrecision},
		{name: "not a number", input: "ten", wantErr: ErrMalformed},
		{name: "empty", input: "", wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuantizeBankersRounding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2.005", "2.00"},
		{"2.015", "2.02"},
		{"2.025", "2.02"},
		{"2.035", "2.04"},
		{"3.333333", "3.33"},
		{"6.666666", "6.67"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		if err != nil {
			t.Fatalf("bad test input %q: %v", tt.input, err)
		}
		if got := Quantize(d).String(); got != tt.want {
			t.Errorf("Quantize(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	d, _ := decimal.NewFromString("3.3399")
	if got := Truncate(d).String(); got != "3.33" {
		t.Errorf("Truncate(3.3399) = %s, want 3.33", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := mustParse(t, "10.00")
	b := mustParse(t, "3.33")

	if got := a.Sub(b).String(); got != "6.67" {
		t.Errorf("10.00 - 3.33 = %s, want 6.67", got)
	}
	if got := b.Add(b).Add(b).String(); got != "9.99" {
		t.Errorf("3.33 * 3 = %s, want 9.99", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering is wrong")
	}
	if !FromCents(1000).Equal(a) {
		t.Error("FromCents(1000) should equal 10.00")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := mustParse(t, "12.50")
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"12.50"` {
		t.Errorf("Marshal = %s, want %q", data, `"12.50"`)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(a) {
		t.Errorf("round trip = %s, want %s", back, a)
	}

	// Bare numeric literals are accepted too.
	var bare Amount
	if err := json.Unmarshal([]byte("7.25"), &bare); err != nil {
		t.Fatalf("Unmarshal bare literal failed: %v", err)
	}
	if bare.String() != "7.25" {
		t.Errorf("bare literal = %s, want 7.25", bare)
	}

	// Over-precise payloads are rejected, not rounded.
	var bad Amount
	if err := json.Unmarshal([]byte(`"10.005"`), &bad); !errors.Is(err, ErrPrecision) {
		t.Errorf("Unmarshal(10.005) error = %v, want ErrPrecision", err)
	}
}

func TestDistributeRemainder(t *testing.T) {
	tests := []struct {
		name   string
		target string
		shares map[string]string
		want   map[string]string
	}{
		{
			name:   "one cent short goes to first key",
			target: "10.00",
			shares: map[string]string{"alice": "3.33", "bob": "3.33", "carol": "3.33"},
			want:   map[string]string{"alice": "3.34", "bob": "3.33", "carol": "3.33"},
		},
		{
			name:   "two cents short spread over first two keys",
			target: "10.00",
			shares: map[string]string{"a": "3.32", "b": "3.33", "c": "3.33"},
			want:   map[string]string{"a": "3.33", "b": "3.34", "c": "3.33"},
		},
		{
			name:   "one cent over taken from first key",
			target: "10.00",
			shares: map[string]string{"a": "3.34", "b": "3.34", "c": "3.33"},
			want:   map[string]string{"a": "3.33", "b": "3.34", "c": "3.33"},
		},
		{
			name:   "already exact is untouched",
			target: "10.00",
			shares: map[string]string{"a": "5.00", "b": "5.00"},
			want:   map[string]string{"a": "5.00", "b": "5.00"},
		},
		{
			name:   "zero share skipped when removing",
			target: "1.00",
			shares: map[string]string{"a": "0.00", "b": "1.02"},
			want:   map[string]string{"a": "0.00", "b": "1.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := mustParse(t, tt.target)
			shares := make(map[string]Amount, len(tt.shares))
			for k, v := range tt.shares {
				shares[k] = mustParse(t, v)
			}

			DistributeRemainder(target, shares)

			for k, v := range tt.want {
				if got := shares[k].String(); got != v {
					t.Errorf("shares[%s] = %s, want %s", k, got, v)
				}
			}
			if got := Sum(values(shares)); !got.Equal(target) {
				t.Errorf("sum = %s, want %s", got, target)
			}
		})
	}
}

func TestDistributeRemainderUnabsorbableDeficit(t *testing.T) {
	// A deficit that zero shares cannot absorb must terminate with the
	// shares untouched instead of walking forever.
	target := mustParse(t, "-0.05")
	shares := map[string]Amount{
		"a": mustParse(t, "0.00"),
		"b": mustParse(t, "0.00"),
	}

	DistributeRemainder(target, shares)

	for k, v := range shares {
		if !v.Equal(Zero) {
			t.Errorf("shares[%s] = %s, want 0.00", k, v)
		}
	}
}

func TestDistributeRemainderPartialAbsorption(t *testing.T) {
	// Only one cent is available; the walk takes it and stops.
	target := mustParse(t, "-0.05")
	shares := map[string]Amount{
		"a": mustParse(t, "0.01"),
		"b": mustParse(t, "0.00"),
	}

	DistributeRemainder(target, shares)

	if got := shares["a"].String(); got != "0.00" {
		t.Errorf("shares[a] = %s, want 0.00", got)
	}
	if got := shares["b"].String(); got != "0.00" {
		t.Errorf("shares[b] = %s, want 0.00", got)
	}
}

func TestDistributeRemainderDeterministic(t *testing.T) {
	target := mustParse(t, "100.00")
	for i := 0; i < 20; i++ {
		shares := map[string]Amount{
			"u3": mustParse(t, "33.33"),
			"u1": mustParse(t, "33.33"),
			"u2": mustParse(t, "33.33"),
		}
		DistributeRemainder(target, shares)
		if got := shares["u1"].String(); got != "33.34" {
			t.Fatalf("run %d: u1 = %s, want 33.34", i, got)
		}
	}
}
