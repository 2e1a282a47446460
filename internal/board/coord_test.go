package board

import "testing"

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord("e4")
	if err != nil {
		t.Fatal("Error parsing square:", err)
	}
	if c != E4 {
		t.Errorf("ParseCoord(e4) = %d, want %d", c, E4)
	}
	if c.File() != 4 || c.Rank() != 3 {
		t.Errorf("e4 file/rank = %d/%d, want 4/3", c.File(), c.Rank())
	}
}

func TestCoordStringRoundTrip(t *testing.T) {
	for c := Coord(0); c < NoCoord; c++ {
		got, err := ParseCoord(c.String())
		if err != nil {
			t.Fatalf("round trip %s: %v", c, err)
		}
		if got != c {
			t.Errorf("round trip %s: got %d, want %d", c, got, c)
		}
	}
}

func TestParseCoordInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e9", "i4", "44", "e4e"} {
		if _, err := ParseCoord(s); err == nil {
			t.Errorf("ParseCoord(%q) accepted invalid square", s)
		}
	}
}

func TestShade(t *testing.T) {
	// a1 is a dark square, h1 light, and adjacent squares alternate.
	if ShadeOf(A1) != Dark {
		t.Error("a1 should be dark")
	}
	if ShadeOf(H1) != Light {
		t.Error("h1 should be light")
	}
	for c := Coord(0); c < NoCoord; c++ {
		if c.File() < 7 && ShadeOf(c) == ShadeOf(c+1) {
			t.Errorf("%s and %s have the same shade", c, c+1)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatal("Error parsing move:", err)
	}
	if m.From != E2 || m.To != E4 {
		t.Errorf("ParseMove(e2e4) = %s", m)
	}
	if m.String() != "e2e4" {
		t.Errorf("Move.String() = %q, want e2e4", m.String())
	}

	for _, s := range []string{"", "e2", "e2e9", "e2 e4"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) accepted invalid move", s)
		}
	}
}
