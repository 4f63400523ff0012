package code

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

// TestGenerate 生成的共享码长度和字符合法
func TestGenerate(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		c := Generate(r)
		if err := Validate(c); err != nil {
			t.Fatalf("Generate() produced invalid code %q: %v", c, err)
		}
	}
	if err := Validate(Generate(nil)); err != nil {
		t.Errorf("Generate(nil) invalid: %v", err)
	}
}

// TestGenerateDeterministic 相同种子生成相同序列
func TestGenerateDeterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 7))
	b := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 10; i++ {
		if x, y := Generate(a), Generate(b); x != y {
			t.Fatalf("round %d: %q != %q", i, x, y)
		}
	}
}

// TestGenerateCoversAlphabet 大量采样覆盖全部字符
func TestGenerateCoversAlphabet(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	seen := map[rune]bool{}
	for i := 0; i < 2000; i++ {
		for _, c := range Generate(r) {
			seen[c] = true
		}
	}
	for _, c := range Alphabet {
		if !seen[c] {
			t.Errorf("character %q never generated", c)
		}
	}
}

// TestParse 测试输入规范化和校验
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "合法大写", input: "ABC123", want: "ABC123"},
		{name: "小写自动转大写", input: "abc123", want: "ABC123"},
		{name: "首尾空白", input: "  x9y8z7 \n", want: "X9Y8Z7"},
		{name: "过短", input: "ABC12", wantErr: ErrInvalidLength},
		{name: "过长", input: "ABC1234", wantErr: ErrInvalidLength},
		{name: "空字符串", input: "", wantErr: ErrInvalidLength},
		{name: "含符号", input: "ABC-12", wantErr: ErrInvalidCharacter},
		{name: "中间空格", input: "ABC 12", wantErr: ErrInvalidCharacter},
		{name: "非 ASCII", input: "ÄBC123", wantErr: ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalize 只做大小写和空白处理
func TestNormalize(t *testing.T) {
	if got := Normalize(" ab-c "); got != strings.ToUpper("ab-c") {
		t.Errorf("Normalize = %q", got)
	}
}
