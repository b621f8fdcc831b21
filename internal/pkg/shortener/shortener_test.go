package shortener

import (
	"strings"
	"testing"
)

func TestGenerateSecureSlug_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := GenerateSecureSlug(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
	if _, err := GenerateSecureSlug(-3); err == nil {
		t.Fatalf("expected error for negative length")
	}
}

func TestGenerateSecureSlug_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	slug, err := GenerateSecureSlug(24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slug) != 24 {
		t.Fatalf("expected slug length 24, got %d", len(slug))
	}

	for i := 0; i < len(slug); i++ {
		if strings.IndexByte(alphabet, slug[i]) == -1 {
			t.Fatalf("slug contains invalid character %q", slug[i])
		}
	}
}

func TestGenerateSecureSlug_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		slug, err := GenerateSecureSlug(16)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[slug]; exists {
			t.Fatalf("duplicate slug generated in small batch: %s", slug)
		}
		seen[slug] = struct{}{}
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	for _, id := range []uint{0, 1, 61, 62, 12345, 999999999} {
		encoded := EncodeID(id)
		decoded, err := DecodeID(encoded)
		if err != nil {
			t.Fatalf("DecodeID(%q) returned error: %v", encoded, err)
		}
		if decoded != id {
			t.Fatalf("roundtrip(%d) = %d via %q", id, decoded, encoded)
		}
	}
}

func TestDecodeID_InvalidCharacter(t *testing.T) {
	t.Parallel()

	if _, err := DecodeID("abc!"); err == nil {
		t.Fatalf("expected error for invalid character")
	}
}
