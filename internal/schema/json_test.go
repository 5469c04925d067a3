package schema

import "testing"

func TestJSONArrayValueNilIsEmptyList(t *testing.T) {
	var a JSONArray
	v, err := a.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if v != "[]" {
		t.Fatalf("got=%v, want []", v)
	}
}

func TestJSONArrayScanKeepsOrder(t *testing.T) {
	var a JSONArray
	if err := a.Scan([]byte(`["ler","correr","ler"]`)); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(a) != 3 || a[0] != "ler" || a[1] != "correr" || a[2] != "ler" {
		t.Fatalf("got=%v", a)
	}

	if err := a.Scan(nil); err != nil || len(a) != 0 {
		t.Fatalf("Scan(nil) got=%v err=%v", a, err)
	}
	if err := a.Scan("null"); err != nil || a == nil {
		t.Fatalf("Scan(null) got=%v err=%v", a, err)
	}
}

func TestMoodValidIsExact(t *testing.T) {
	for _, m := range Moods() {
		if !m.Valid() {
			t.Fatalf("%q should be valid", m)
		}
	}
	for _, m := range []Mood{"feliz", "Happy", "", "Feliz "} {
		if m.Valid() {
			t.Fatalf("%q should be invalid", m)
		}
	}
}
