// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format OutputFormat
		want   bool
	}{
		{"", true},
		{OutputFormatText, true},
		{OutputFormatTable, true},
		{OutputFormatJSON, true},
		{OutputFormatTOML, true},
		{"yaml", false},
		{"JSON", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.format.IsValid()
			if isValid != tt.want {
				t.Errorf("OutputFormat(%q).IsValid() = %v, want %v", tt.format, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidOutputFormat)) {
				t.Errorf("OutputFormat(%q).IsValid() errors = %v, want ErrInvalidOutputFormat", tt.format, errs)
			}
		})
	}
}
