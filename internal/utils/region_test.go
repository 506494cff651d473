package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRegion(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    string
	}{
		{"district", "서울특별시 강남구 테헤란로 123", "서울특별시 강남구"},
		{"county", "경상북도 울릉군 울릉읍", "경상북도 울릉군"},
		{"city fallback", "경기도 성남시 분당로 50", "경기도 성남시"},
		{"no marker", "어딘가 모르는 곳", "어딘가 모르는 곳"},
		{"country prefix skipped", "대한민국 서울특별시 강남구 테헤란로", "서울특별시 강남구"},
		{"country mid-token skipped", "서울특별시 대한민국 강남구", "서울특별시 강남구"},
		{"parenthesized part stripped", "서울특별시 강남구 테헤란로 123 (역삼동)", "서울특별시 강남구"},
		{"parens around district still found", "서울특별시 (비고) 강남구", "서울특별시 강남구"},
		{"collapsed whitespace", "  서울특별시   강남구  ", "서울특별시 강남구"},
		{"empty", "", ""},
		{"only parens", "(비고)", ""},
		{"district beats later city", "부산광역시 해운대구 우동", "부산광역시 해운대구"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractRegion(tc.address))
		})
	}
}

func TestRandomAlphanumeric(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := RandomAlphanumeric(16)
		assert.Len(t, s, 16)
		for _, c := range s {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'),
				"unexpected character %q", c)
		}
		seen[s] = true
	}
	assert.Greater(t, len(seen), 90, "tokens should be effectively unique")
}
