package utils

import (
	"regexp"
	"testing"
)

func TestGenerateSystemCode(t *testing.T) {
	pattern := regexp.MustCompile(`^E-\d{5}$`)
	for i := 0; i < 200; i++ {
		code := GenerateSystemCode("EMPTY SHELL", nil)
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, pattern)
		}
	}
}

func TestGenerateSystemCodeBounds(t *testing.T) {
	if got := GenerateSystemCode("CONTENT", func(int) int { return 0 }); got != "C-10000" {
		t.Fatalf("got %q", got)
	}
	if got := GenerateSystemCode("BAD ORDER", func(n int) int { return n - 1 }); got != "B-99999" {
		t.Fatalf("got %q", got)
	}
	if got := GenerateSystemCode("", nil); got != "" {
		t.Fatalf("empty category should not produce a code, got %q", got)
	}
}

func TestGenerateReceiveNo(t *testing.T) {
	if got := GenerateReceiveNo(func(int) int { return 42 }); got != "R000042" {
		t.Fatalf("got %q", got)
	}
	if !regexp.MustCompile(`^R\d{6}$`).MatchString(GenerateReceiveNo(nil)) {
		t.Fatal("receive number must be R followed by six digits")
	}
}
