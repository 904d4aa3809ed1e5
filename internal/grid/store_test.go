package grid

import "testing"

func TestDimsValidate(t *testing.T) {
	cases := []struct {
		d       Dims
		wantErr bool
	}{
		{Dims{4, 4, 4}, false},
		{Dims{4, 0, 4}, false}, // 2-D mode is valid
		{Dims{0, 4, 4}, true},
		{Dims{4, -1, 4}, true},
		{Dims{4, 4, 0}, true},
	}
	for _, c := range cases {
		err := c.d.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("Validate(%+v) error=%v, wantErr=%v", c.d, err, c.wantErr)
		}
	}
}

func TestSplitSumIdentity(t *testing.T) {
	d := Dims{ITot: 4, JTot: 4, KTot: 4}
	s, err := NewStore(d)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s.E[Exy].Set(1, 1, 1, 0.3)
	s.E[Exz].Set(1, 1, 1, 0.7)
	got := s.Physical(AxisX, true, 1, 1, 1)
	if want := 1.0; got != want {
		t.Errorf("Physical(Ex) = %v, want %v", got, want)
	}

	s.H[Hzx].Set(0, 0, 0, -0.2)
	s.H[Hzy].Set(0, 0, 0, 0.9)
	got = s.Physical(AxisZ, false, 0, 0, 0)
	if want := 0.7; absDiff(got, want) > 1e-12 {
		t.Errorf("Physical(Hz) = %v, want %v", got, want)
	}
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func TestEnableDispersionIsLazy(t *testing.T) {
	s, err := NewStore(Dims{4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	if s.Js != nil {
		t.Fatal("Js should be nil before EnableDispersion")
	}
	s.EnableDispersion()
	if s.Js == nil || s.Enm1 == nil || s.JsNm1 == nil {
		t.Fatal("EnableDispersion did not allocate Js/Enm1/JsNm1")
	}
}

func TestMaterialAtBounds(t *testing.T) {
	s, err := NewStore(Dims{4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.MaterialAt(0, 0, 0); err != nil {
		t.Fatalf("MaterialAt(0,0,0): %v", err)
	}
	if _, err := s.MaterialAt(-1, 0, 0); err == nil {
		t.Fatal("expected invariant error for negative k")
	}
}
