package validation

import "testing"

func strPtr(s string) *string { return &s }

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		name       string
		courseName string
		gid        *string
		wantFields []string
	}{
		{"valid without gid", "Algorithms", nil, nil},
		{"valid with gid", "Algorithms", strPtr("1AbCdEfGh_ij-KL"), nil},
		{"blank name", "   ", nil, []string{"name"}},
		{"bad gid", "Algorithms", strPtr("not a gid!"), []string{"gid"}},
		{"empty gid is allowed", "Algorithms", strPtr(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCourse(tt.courseName, tt.gid)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateCourse() = %v, want fields %v", errs, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := errs[f]; !ok {
					t.Fatalf("expected error on %q, got %v", f, errs)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if errs := ValidatePassword("abcdefg1"); !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs := ValidatePassword("short1"); errs.Empty() {
		t.Fatal("expected length error")
	}
	if errs := ValidatePassword("lettersonly"); errs.Empty() {
		t.Fatal("expected composition error")
	}
}
