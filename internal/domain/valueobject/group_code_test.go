package valueobject

import "testing"

func TestNewGroupCode_Lowercase_NormalizesToUppercase(t *testing.T) {
	code, err := NewGroupCode(" ab12cd ")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.Value() != "AB12CD" {
		t.Errorf("got %q, want %q", code.Value(), "AB12CD")
	}
}

func TestNewGroupCode_Empty_ReturnsErrGroupCodeEmpty(t *testing.T) {
	_, err := NewGroupCode("   ")

	if err != ErrGroupCodeEmpty {
		t.Errorf("expected ErrGroupCodeEmpty, got: %v", err)
	}
}

func TestNewGroupCode_WrongLength_ReturnsErrGroupCodeInvalidLength(t *testing.T) {
	for _, input := range []string{"ABC", "ABCDEFG"} {
		if _, err := NewGroupCode(input); err != ErrGroupCodeInvalidLength {
			t.Errorf("%q: expected ErrGroupCodeInvalidLength, got: %v", input, err)
		}
	}
}

func TestNewGroupCode_Symbols_ReturnsErrGroupCodeInvalidChar(t *testing.T) {
	_, err := NewGroupCode("AB-12C")

	if err != ErrGroupCodeInvalidChar {
		t.Errorf("expected ErrGroupCodeInvalidChar, got: %v", err)
	}
}

func TestGroupCodeAlphabet_Has36Symbols(t *testing.T) {
	if len(GroupCodeAlphabet) != 36 {
		t.Errorf("alphabet has %d symbols, want 36", len(GroupCodeAlphabet))
	}
}
