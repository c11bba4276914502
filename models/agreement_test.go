package models

import "testing"

func TestActiveVersionExactMatch(t *testing.T) {
	a := &Agreement{
		CurrentVersion: 2,
		Versions: []AgreementVersion{
			{Version: 1, Status: AgreementFullySigned},
			{Version: 2, Status: AgreementPendingRenter},
			{Version: 3, Status: AgreementPendingOwner},
		},
	}

	v := a.ActiveVersion()
	if v == nil || v.Version != 2 {
		t.Fatalf("expected version 2 to be active, got %+v", v)
	}
	if a.IsFullySigned() {
		t.Error("agreement with pending active version must not count as signed")
	}
}

// A stale CurrentVersion falls back to the last element, even when that is
// not the numerically newest version. Old documents depend on this.
func TestActiveVersionFallbackToLast(t *testing.T) {
	a := &Agreement{
		CurrentVersion: 99,
		Versions: []AgreementVersion{
			{Version: 3, Status: AgreementPendingOwner},
			{Version: 1, Status: AgreementFullySigned},
		},
	}

	v := a.ActiveVersion()
	if v == nil || v.Version != 1 {
		t.Fatalf("expected fallback to last element (version 1), got %+v", v)
	}
	if !a.IsFullySigned() {
		t.Error("fallback version is fully signed, agreement should count as signed")
	}
}

func TestActiveVersionEmpty(t *testing.T) {
	a := &Agreement{CurrentVersion: 1}
	if v := a.ActiveVersion(); v != nil {
		t.Errorf("expected nil active version for empty history, got %+v", v)
	}
	if a.IsFullySigned() {
		t.Error("agreement without versions must not count as signed")
	}
}
