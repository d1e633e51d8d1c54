package model

import "testing"

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusRead, StatusReplied, StatusResolved} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []Status{"", "archived", "New", "REPLIED", "unread"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
