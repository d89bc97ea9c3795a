package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SV_TEST_INT", "nope")
	if got := Int("SV_TEST_INT", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	t.Setenv("SV_TEST_INT", " 42 ")
	if got := Int("SV_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestBoolAndSeconds(t *testing.T) {
	t.Setenv("SV_TEST_BOOL", "on")
	if !Bool("SV_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("SV_TEST_SECS", "90")
	if got := Seconds("SV_TEST_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestListSkipsBlanks(t *testing.T) {
	t.Setenv("SV_TEST_LIST", "a, ,b,")
	got := List("SV_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list: %#v", got)
	}
}
