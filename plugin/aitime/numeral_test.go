package aitime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumerals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"下午三点", "下午3点"},
		{"十点", "10点"},
		{"十一点", "11点"},
		{"十二點", "12點"},
		{"二十点", "20点"},
		{"二十一點", "21點"},
		{"三十一號", "31號"},
		{"廿五日", "25日"},
		{"卅日", "30日"},
		{"兩點", "2點"},
		{"两点半", "2点半"},
		{"十二月二十五日", "12月25日"},
		{"星期一", "星期1"},
		{"二〇二五年", "2025年"},
		// 全形數字與標點
		{"１５：３０", "15:30"},
		{"１１／１５？", "11/15?"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeNumerals(tt.input))
		})
	}
}

func TestNormalizeNumerals_Idempotent(t *testing.T) {
	inputs := []string{
		"明天下午三點半",
		"十二月二十五日晚上十點",
		"下下週三 十五點十五分",
		"１５：３０ 或者 廿九號",
		"two o'clock 三十",
		"零點零五",
	}
	for _, in := range inputs {
		once := NormalizeNumerals(in)
		assert.Equal(t, once, NormalizeNumerals(once), in)
	}
}
