package vtcore

import "testing"

func TestParamsGetDefaultsOnAbsent(t *testing.T) {
	p := NewParams()
	p.Add(ParamAbsent)
	if got := p.Get(0, 1); got != 1 {
		t.Fatalf("get absent = %d, want default 1", got)
	}
	if got := p.Get(5, 42); got != 42 {
		t.Fatalf("get out-of-range = %d, want default 42", got)
	}
}

func TestParamsHas(t *testing.T) {
	p := NewParams()
	p.Add(5)
	p.Add(ParamAbsent)
	if !p.Has(0) {
		t.Fatalf("has(0) should be true")
	}
	if p.Has(1) {
		t.Fatalf("has(1) should be false for absent value")
	}
	if p.Has(2) {
		t.Fatalf("has(2) should be false out of range")
	}
}

func TestParamsUpdateLastAccumulatesDigits(t *testing.T) {
	p := NewParams()
	p.Add(0)
	for _, d := range []int32{1, 2, 3} {
		cur := p.Get(0, 0)
		p.UpdateLast(cur*10 + d)
	}
	if got := p.Get(0, 0); got != 123 {
		t.Fatalf("accumulated value = %d, want 123", got)
	}
}

func TestParamsSubParams(t *testing.T) {
	p := NewParams()
	p.Add(38)
	p.AddSub(2)
	p.AddSub(255)
	p.AddSub(0)
	p.AddSub(0)
	subs := p.GetSubs(0)
	if len(subs) != 4 {
		t.Fatalf("subs len = %d, want 4", len(subs))
	}
}

func TestParamsCloneIsIndependent(t *testing.T) {
	p := NewParams()
	p.Add(1)
	c := p.Clone()
	c.UpdateLast(99)
	if p.Get(0, 0) != 1 {
		t.Fatalf("mutating clone affected original")
	}
}

func TestParamsReset(t *testing.T) {
	p := NewParams()
	p.Add(1)
	p.Add(2)
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("len after reset = %d, want 0", p.Len())
	}
}
