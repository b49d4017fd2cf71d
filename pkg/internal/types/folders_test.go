package types

import "testing"

func TestBreadcrumbs(t *testing.T) {
	if got := Breadcrumbs(""); got != nil {
		t.Errorf("Breadcrumbs(root) = %+v, want nil", got)
	}

	got := Breadcrumbs("Docs/Sub/")
	if len(got) != 2 {
		t.Fatalf("Breadcrumbs = %+v, want 2 levels", got)
	}

	if got[0].Name != "Docs" || got[0].Path != "Docs/" {
		t.Errorf("level 0 = %+v", got[0])
	}

	if got[1].Name != "Sub" || got[1].Path != "Docs/Sub/" {
		t.Errorf("level 1 = %+v", got[1])
	}
}
