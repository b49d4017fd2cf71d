package classify_test

import (
	"strings"
	"testing"

	"github.com/yemou/archivault/pkg/internal/classify"
)

// TestClassifyMIME 测试 MIME 子串规则与顺序（具体分类优先于泛化匹配）.
func TestClassifyMIME(t *testing.T) {
	cases := []struct {
		mime string
		name string
		want classify.Category
	}{
		{"application/pdf", "", classify.CategoryPDF},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "", classify.CategorySpreadsheet},
		{"application/vnd.ms-powerpoint", "", classify.CategoryPresentation},
		{"application/zip", "", classify.CategoryArchive},
		{"application/x-tar", "", classify.CategoryArchive},
		{"text/javascript", "", classify.CategoryCode},
		{"application/json", "", classify.CategoryCode},
		{"application/msword", "", classify.CategoryDocument},
		{"image/png", "", classify.CategoryImage},
		{"video/mp4", "", classify.CategoryVideo},
		{"audio/mpeg", "", classify.CategoryAudio},
		{"text/plain", "", classify.CategoryText},
		// 无规则命中时回退到斜杠前缀段
		{"font/woff2", "", classify.Category("font")},
	}

	for _, c := range cases {
		if got := classify.Classify(c.mime, c.name); got != c.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", c.mime, c.name, got, c.want)
		}
	}
}

// TestClassifyExtensionFallback 测试无 MIME 匹配时的扩展名兜底.
func TestClassifyExtensionFallback(t *testing.T) {
	cases := []struct {
		mime string
		name string
		want classify.Category
	}{
		{"", "photo.JPG", classify.CategoryImage},
		{"", "report.docx", classify.CategoryDocument},
		{"", "main.go", classify.CategoryCode},
		{"application/octet-stream", "notes.md", classify.CategoryText},
		{"application/octet-stream", "backup.tar", classify.CategoryArchive},
	}

	for _, c := range cases {
		if got := classify.Classify(c.mime, c.name); got != c.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", c.mime, c.name, got, c.want)
		}
	}
}

// TestClassifyTotal 任意输入都不应 panic，空输入返回 default.
func TestClassifyTotal(t *testing.T) {
	if got := classify.Classify("", ""); got != classify.CategoryDefault {
		t.Errorf("Classify(\"\", \"\") = %q, want default", got)
	}

	inputs := []string{"", " ", "weird", "a/b/c", "....", "UPPER/CASE"}
	for _, mime := range inputs {
		for _, name := range inputs {
			_ = classify.Classify(mime, name)
		}
	}
}

// TestClassifyCaseInsensitive classify(x) == classify(upper(x)).
func TestClassifyCaseInsensitive(t *testing.T) {
	inputs := []struct{ mime, name string }{
		{"application/pdf", ""},
		{"image/png", "photo.png"},
		{"", "archive.ZIP"},
		{"Text/Plain", "Notes.TXT"},
	}

	for _, in := range inputs {
		lower := classify.Classify(in.mime, in.name)
		upper := classify.Classify(strings.ToUpper(in.mime), strings.ToUpper(in.name))

		if lower != upper {
			t.Errorf("case sensitivity: Classify(%q)=%q but upper=%q", in.mime, lower, upper)
		}
	}
}

// TestIconFor 图标查找是全函数，未知分类回退默认图标.
func TestIconFor(t *testing.T) {
	if classify.IconFor(classify.CategoryImage) == "" {
		t.Error("IconFor(image) returned empty glyph")
	}

	if classify.IconFor(classify.Category("no-such-category")) == "" {
		t.Error("IconFor(unknown) should return the default glyph")
	}

	if classify.IconFor(classify.CategoryDefault) != classify.IconFor(classify.Category("nope")) {
		t.Error("unknown categories should share the default glyph")
	}
}
