package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPresignedOpTimeout 默认预签名操作超时时间.
	DefaultPresignedOpTimeout = 15 * time.Minute
	// snippetLimit 搜索结果摘要的最大字符数.
	snippetLimit = 100
	// searchThreshold 相关度下限，低于此分数的候选不进入结果集.
	searchThreshold = 0.1
	// sessionTTL 搜索会话（用于重排序）的缓存时长.
	sessionTTL = 30 * time.Minute
)

// buildObjectKey 构建对象存储路径. 放在 service 层便于未来统一策略
// （如目录分桶、版本号等）.
func buildObjectKey(owner, fileName string) string {
	datePath := time.Now().UTC().Format("2006/01") // 只到月，避免目录过深

	return fmt.Sprintf("%s/%s/%s_%s", owner, datePath, uuid.NewString()[:8], fileName)
}

// snippet 从抽取的正文生成摘要：截断到 snippetLimit 个字符并补省略号；
// 正文为空时回退到文件名.
func snippet(content, name string) string {
	if content == "" {
		return name
	}

	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}

	return string(runes[:snippetLimit]) + "..."
}

// objectKeyFromURL 从存储 URL 推导对象键：去掉查询串（签名参数），
// 去掉前导斜杠与 bucket 前缀.
func objectKeyFromURL(rawURL, bucket string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	key := strings.TrimPrefix(u.Path, "/")
	if bucket != "" {
		key = strings.TrimPrefix(key, bucket+"/")
	}

	return key
}

// metaValue 将可缺省的元数据值归一化为字符串.
// 缺失值写成空串而不是字面量 "null"，否则会作为真实元数据存进
// 对象存储并在回读时当成用户输入.
func metaValue(s string) string {
	if s == "null" || s == "undefined" {
		return ""
	}

	return s
}

// joinTags 标签列表序列化为逗号分隔串，用于对象存储元数据头.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
