package translit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"english", "Auckland", "auckland"},
		{"upper with trailing space", "AUCKLAND ", "auckland"},
		{"chinese exonym", "奥克兰", "auckland"},
		{"chinese without exonym", "北京", "beijing"},
		{"mixed script", "奥克兰 North Shore", "aucklandnorthshore"},
		{"punctuation", "Hawke's Bay", "hawkesbay"},
		{"hyphen", "Manawatu-Whanganui", "manawatuwhanganui"},
		{"digits kept", "Zone 3", "zone3"},
		{"full width", "ＡＵＣＫＬＡＮＤ", "auckland"},
		{"macron", "Whangārei", "whangarei"},
		{"only punctuation", "!!! ---", ""},
		{"longest exonym first", "北帕默斯顿", "palmerstonnorth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.input))
		})
	}
}

func TestKeyWithoutExonyms(t *testing.T) {
	tr := New(nil)

	assert.Equal(t, "aokelan", tr.Key("奥克兰"))
	assert.Equal(t, "auckland", tr.Key("Auckland"))
}

func TestPinyinPassesThroughLatin(t *testing.T) {
	tr := New(nil)

	assert.Equal(t, "beijing", tr.Pinyin("北京"))
	assert.Equal(t, "Hi, beijing!", tr.Pinyin("Hi, 北京!"))
	assert.Equal(t, "", tr.Pinyin(""))
}

func TestKeyOutputAlphabet(t *testing.T) {
	inputs := []string{"奥克兰", "Ōtautahi", "São Paulo", "№5 東京", "\t\n", "新西兰 NZ"}
	for _, in := range inputs {
		for _, c := range Key(in) {
			assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'), "key of %q contains %q", in, c)
		}
	}
}

func TestNewZealandExonymsIsCopy(t *testing.T) {
	m := NewZealandExonyms()
	m["奥克兰"] = "Elsewhere"

	assert.Equal(t, "Auckland", NewZealandExonyms()["奥克兰"])
	assert.Equal(t, "auckland", Key("奥克兰"))
}
