package types

import "fmt"

// 大小单位边界.
const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// FormatSize 将字节数格式化为人类可读的大小.
// 1024 以下显示整数字节，以上保留一位小数："500 B"、"1.0 KB"、
// "2.5 MB"、"1.0 GB".
func FormatSize(size int64) string {
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	}
}
