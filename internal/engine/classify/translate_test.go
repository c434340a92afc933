package classify_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/engine/classify"
)

func TestTranslateToLLC(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name: "triple cpu features and abi",
			tokens: []string{
				"clang", "-cc1", "-triple", "cheri-unknown-freebsd",
				"-target-cpu", "cheri128", "-target-feature", "+soft-float",
				"-target-feature", "+chericap", "-target-abi", "purecap", "%s",
			},
			want: []string{
				"llc", "-mtriple=cheri-unknown-freebsd", "-mcpu=cheri128",
				"-target-abi=purecap", "-mattr=+soft-float,+chericap",
				"%s", "-o", os.DevNull,
			},
		},
		{
			name: "mllvm passes through and unknown flags drop",
			tokens: []string{
				"clang", "-cc1", "-mllvm", "-enable-misched",
				"-fcolor-diagnostics", "-mrelocation-model", "pic", "%s",
			},
			want: []string{
				"llc", "-enable-misched", "-relocation-model=pic",
				"%s", "-o", os.DevNull,
			},
		},
		{
			name:   "soft float variants fold into one flag",
			tokens: []string{"clang", "-cc1", "-msoft-float", "-mfloat-abi", "soft", "%s"},
			want:   []string{"llc", "-float-abi=soft", "%s", "-o", os.DevNull},
		},
		{
			name:   "hard float abi is dropped",
			tokens: []string{"clang", "-cc1", "-mfloat-abi", "hard", "%s"},
			want:   []string{"llc", "%s", "-o", os.DevNull},
		},
		{
			name:   "opt levels clamp to llc range",
			tokens: []string{"clang", "-cc1", "-Os", "-O2", "%s"},
			want:   []string{"llc", "-O2", "-O2", "%s", "-o", os.DevNull},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := domain.NewInvocation(tt.tokens)
			require.NoError(t, err)

			got, err := classify.TranslateToLLC(inv, "llc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Tokens())
		})
	}
}
