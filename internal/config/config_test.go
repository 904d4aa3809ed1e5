package config

import "testing"

func validBundle() Bundle {
	return Bundle{
		Grid: Grid{ITot: 4, JTot: 4, KTot: 4, Dx: 1e-8, Dy: 1e-8, Dz: 1e-8},
		Source: Source{
			Omega:      1e9,
			SourceMode: "steadystate",
		},
		Run: Run{Nt: 100, Dimension: "3"},
	}
}

func TestValidateAcceptsWellFormedBundle(t *testing.T) {
	b := validBundle()
	if err := b.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsNonPositiveGrid(t *testing.T) {
	b := validBundle()
	b.Grid.ITot = 0
	if err := b.Validate(); err == nil {
		t.Fatal("expected an error for a non-positive grid extent")
	}
}

func TestValidateRejectsUnknownSourceMode(t *testing.T) {
	b := validBundle()
	b.Source.SourceMode = "bogus"
	if err := b.Validate(); err == nil {
		t.Fatal("expected an error for an unknown sourcemode")
	}
}

func TestValidateRejectsUnknownDimension(t *testing.T) {
	b := validBundle()
	b.Run.Dimension = "4D"
	if err := b.Validate(); err == nil {
		t.Fatal("expected an error for an unknown dimension")
	}
}

func TestYAMLCodecRoundTrip(t *testing.T) {
	codec := YAMLCodec{}
	path := t.TempDir() + "/bundle.yaml"
	b := validBundle()
	if err := codec.Write(path, &b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := codec.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Grid.ITot != b.Grid.ITot || got.Source.SourceMode != b.Source.SourceMode {
		t.Errorf("round trip mismatch: got %+v, want %+v", got.Grid, b.Grid)
	}
}

func TestYAMLCodecLoadMissingFile(t *testing.T) {
	codec := YAMLCodec{}
	if _, err := codec.Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected a resource error for a missing file")
	}
}
