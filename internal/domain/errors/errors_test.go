package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrMissionFull == nil {
		t.Error("ErrMissionFull should not be nil")
	}
	if ErrDuplicateApplication == nil {
		t.Error("ErrDuplicateApplication should not be nil")
	}
	if ErrSkillGap == nil {
		t.Error("ErrSkillGap should not be nil")
	}
	if ErrAlreadyValidated == nil {
		t.Error("ErrAlreadyValidated should not be nil")
	}
}
