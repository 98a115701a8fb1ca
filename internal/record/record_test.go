package record

import (
	"strings"
	"testing"
)

// testAuthority builds a deterministic authority from a single seed byte.
func testAuthority(seed byte) Authority {
	var a Authority
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestNew_SetsAuthorityAndZeroesFields(t *testing.T) {
	alice := testAuthority(0xA1)

	r := New(alice)

	if !r.Authority.Equal(alice) {
		t.Errorf("authority = %s, want %s", r.Authority, alice)
	}
	if r.CurrentProtocol != 0 {
		t.Errorf("CurrentProtocol = %d, want 0", r.CurrentProtocol)
	}
	if r.CurrentAPYBps != 0 {
		t.Errorf("CurrentAPYBps = %d, want 0", r.CurrentAPYBps)
	}
}

func TestApplyUpdate_AuthorizedOverwritesBothFields(t *testing.T) {
	alice := testAuthority(0xA1)
	r := New(alice)

	if err := r.ApplyUpdate(alice, 3, 550); err != nil {
		t.Fatalf("ApplyUpdate() failed: %v", err)
	}

	if r.CurrentProtocol != 3 {
		t.Errorf("CurrentProtocol = %d, want 3", r.CurrentProtocol)
	}
	if r.CurrentAPYBps != 550 {
		t.Errorf("CurrentAPYBps = %d, want 550", r.CurrentAPYBps)
	}
}

func TestApplyUpdate_UnauthorizedLeavesRecordUnchanged(t *testing.T) {
	alice := testAuthority(0xA1)
	bob := testAuthority(0xB0)

	r := New(alice)
	if err := r.ApplyUpdate(alice, 3, 550); err != nil {
		t.Fatalf("authorized update failed: %v", err)
	}
	before := *r

	err := r.ApplyUpdate(bob, 7, 100)
	if err == nil {
		t.Fatal("ApplyUpdate() by non-authority succeeded, want UNAUTHORIZED")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}

	// Bit-for-bit unchanged, no partial writes.
	if *r != before {
		t.Errorf("record mutated by rejected update: got %+v, want %+v", *r, before)
	}
}

func TestApplyUpdate_AuthorityNeverChanges(t *testing.T) {
	alice := testAuthority(0xA1)
	bob := testAuthority(0xB0)
	r := New(alice)

	// No sequence of updates, authorized or not, touches the authority.
	_ = r.ApplyUpdate(alice, 1, 100)
	_ = r.ApplyUpdate(bob, 2, 200)
	_ = r.ApplyUpdate(alice, 3, 300)

	if !r.Authority.Equal(alice) {
		t.Errorf("authority = %s, want %s", r.Authority, alice)
	}
}

func TestApplyUpdate_RepeatedIdenticalUpdateIsIdempotent(t *testing.T) {
	alice := testAuthority(0xA1)
	r := New(alice)

	if err := r.ApplyUpdate(alice, 9, 1234); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	after := *r

	if err := r.ApplyUpdate(alice, 9, 1234); err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	if *r != after {
		t.Errorf("repeated identical update changed state: got %+v, want %+v", *r, after)
	}
}

func TestApplyUpdate_ExtremeValuesAccepted(t *testing.T) {
	// No bounds validation: the full u8/u16 range is legal.
	tests := []struct {
		name     string
		protocol uint8
		apyBps   uint16
	}{
		{"zero values", 0, 0},
		{"max protocol", 255, 1},
		{"max apy", 1, 65535},
		{"both max", 255, 65535},
	}

	alice := testAuthority(0xA1)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(alice)
			if err := r.ApplyUpdate(alice, tt.protocol, tt.apyBps); err != nil {
				t.Fatalf("ApplyUpdate(%d, %d) failed: %v", tt.protocol, tt.apyBps, err)
			}
			if r.CurrentProtocol != tt.protocol || r.CurrentAPYBps != tt.apyBps {
				t.Errorf("got (%d, %d), want (%d, %d)",
					r.CurrentProtocol, r.CurrentAPYBps, tt.protocol, tt.apyBps)
			}
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	alice := testAuthority(0xA1)
	r := New(alice)
	c := r.Clone()

	if err := c.ApplyUpdate(alice, 5, 500); err != nil {
		t.Fatalf("ApplyUpdate() on clone failed: %v", err)
	}

	if r.CurrentProtocol != 0 || r.CurrentAPYBps != 0 {
		t.Errorf("mutating clone changed original: %+v", r)
	}
}

func TestAuthorityFromHex(t *testing.T) {
	hexID := strings.Repeat("a1", AuthoritySize)

	a, err := AuthorityFromHex(hexID)
	if err != nil {
		t.Fatalf("AuthorityFromHex() failed: %v", err)
	}
	if a.String() != hexID {
		t.Errorf("round trip = %s, want %s", a.String(), hexID)
	}
}

func TestAuthorityFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "a1b2"},
		{"too long", strings.Repeat("a1", AuthoritySize+1)},
		{"not hex", strings.Repeat("zz", AuthoritySize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AuthorityFromHex(tt.in); err == nil {
				t.Errorf("AuthorityFromHex(%q) succeeded, want error", tt.in)
			}
		})
	}
}

func TestAuthorityFromBytes_WrongLength(t *testing.T) {
	if _, err := AuthorityFromBytes(make([]byte, 31)); err == nil {
		t.Error("AuthorityFromBytes(31 bytes) succeeded, want error")
	}
	if _, err := AuthorityFromBytes(make([]byte, 33)); err == nil {
		t.Error("AuthorityFromBytes(33 bytes) succeeded, want error")
	}
}

func TestIsUnauthorized_OtherErrors(t *testing.T) {
	if IsUnauthorized(nil) {
		t.Error("IsUnauthorized(nil) = true")
	}
	if IsUnauthorized(errDummy{}) {
		t.Error("IsUnauthorized(non-access error) = true")
	}
}

type errDummy struct{}

func (errDummy) Error() string { return "dummy" }
