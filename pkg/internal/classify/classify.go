// Package classify 将 MIME 类型或文件扩展名映射到固定的语义分类与展示图标.
// 纯函数，无 I/O，对任意输入（包括空值）都返回结果而不报错.
package classify

import "strings"

// Category 文件的语义分类.
type Category string

const (
	CategoryImage        Category = "image"
	CategoryVideo        Category = "video"
	CategoryAudio        Category = "audio"
	CategoryPDF          Category = "pdf"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryArchive      Category = "archive"
	CategoryCode         Category = "code"
	CategoryDocument     Category = "document"
	CategoryText         Category = "text"
	CategoryDefault      Category = "default"
)

// mimeRule 子串匹配规则. 顺序敏感：具体分类（pdf、表格、演示、压缩包、
// 代码）必须先于泛化的子串匹配检查.
type mimeRule struct {
	substr   string
	category Category
}

var mimeRules = []mimeRule{
	{"pdf", CategoryPDF},
	{"spreadsheet", CategorySpreadsheet},
	{"excel", CategorySpreadsheet},
	{"csv", CategorySpreadsheet},
	{"presentation", CategoryPresentation},
	{"powerpoint", CategoryPresentation},
	{"zip", CategoryArchive},
	{"rar", CategoryArchive},
	{"7z", CategoryArchive},
	{"tar", CategoryArchive},
	{"gzip", CategoryArchive},
	{"javascript", CategoryCode},
	{"json", CategoryCode},
	{"xml", CategoryCode},
	{"html", CategoryCode},
	{"msword", CategoryDocument},
	{"wordprocessing", CategoryDocument},
	{"rtf", CategoryDocument},
	{"image", CategoryImage},
	{"video", CategoryVideo},
	{"audio", CategoryAudio},
	{"text", CategoryText},
}

// extCategories 无 MIME 匹配时按扩展名兜底.
var extCategories = map[string]Category{
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "webp": CategoryImage, "svg": CategoryImage,
	"bmp": CategoryImage, "ico": CategoryImage,
	"mp4": CategoryVideo, "mkv": CategoryVideo, "avi": CategoryVideo,
	"mov": CategoryVideo, "webm": CategoryVideo,
	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
	"ogg": CategoryAudio, "m4a": CategoryAudio,
	"pdf": CategoryPDF,
	"xls": CategorySpreadsheet, "xlsx": CategorySpreadsheet, "csv": CategorySpreadsheet,
	"ppt": CategoryPresentation, "pptx": CategoryPresentation,
	"zip": CategoryArchive, "rar": CategoryArchive, "7z": CategoryArchive,
	"tar": CategoryArchive, "gz": CategoryArchive,
	"go": CategoryCode, "js": CategoryCode, "ts": CategoryCode,
	"py": CategoryCode, "java": CategoryCode, "c": CategoryCode,
	"cpp": CategoryCode, "rs": CategoryCode, "sh": CategoryCode,
	"json": CategoryCode, "yaml": CategoryCode, "yml": CategoryCode,
	"doc": CategoryDocument, "docx": CategoryDocument, "rtf": CategoryDocument,
	"odt": CategoryDocument,
	"txt": CategoryText, "md": CategoryText, "log": CategoryText,
}

// Classify 将 MIME 类型（可为空）和可选文件名映射到分类.
//
// 匹配顺序：MIME 子串规则 → 扩展名表 → MIME 的斜杠前缀段 → default.
// 大小写不敏感，任何输入都不会失败.
func Classify(mimeType, fileName string) Category {
	mime := strings.ToLower(strings.TrimSpace(mimeType))

	for _, r := range mimeRules {
		if mime != "" && strings.Contains(mime, r.substr) {
			return r.category
		}
	}

	if ext := fileExt(fileName); ext != "" {
		if cat, ok := extCategories[ext]; ok {
			return cat
		}
	}

	if mime != "" {
		if i := strings.Index(mime, "/"); i > 0 {
			return Category(mime[:i])
		}

		return Category(mime)
	}

	return CategoryDefault
}

// fileExt 提取小写扩展名（不含点），没有扩展名返回空串.
func fileExt(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}

	return name[i+1:]
}

// icons 分类到展示图标.
var icons = map[Category]string{
	CategoryImage:        "🖼️",
	CategoryVideo:        "🎬",
	CategoryAudio:        "🎵",
	CategoryPDF:          "📕",
	CategorySpreadsheet:  "📊",
	CategoryPresentation: "📽️",
	CategoryArchive:      "🗜️",
	CategoryCode:         "💻",
	CategoryDocument:     "📄",
	CategoryText:         "📝",
}

const defaultIcon = "📁"

// IconFor 返回分类对应的展示图标，未知分类返回默认图标. 全函数，不失败.
func IconFor(category Category) string {
	if icon, ok := icons[category]; ok {
		return icon
	}

	return defaultIcon
}
