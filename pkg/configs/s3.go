package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// S3Config MinIO S3存储配置.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	// Buckets 需要确保存在的桶列表，第一个为默认文档桶
	Buckets []string `mapstructure:"buckets"`
	Region  string   `mapstructure:"region"`
	// PresignExpiryMinutes 预签名凭证有效期（分钟）
	PresignExpiryMinutes int `mapstructure:"presign_expiry_minutes"`
}

const (
	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3Bucket          = "archivault"     // 默认文档桶名称
	DefaultS3Region          = "us-east-1"      // 默认区域
	DefaultS3PresignExpiry   = 15               // 默认预签名有效期（分钟）
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// DefaultBucket 返回默认文档桶，未配置时返回空串.
func (c *S3Config) DefaultBucket() string {
	if len(c.Buckets) == 0 {
		return ""
	}

	return c.Buckets[0]
}

// setDefaults 设置 S3 配置的默认值.
func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("s3.buckets", []string{DefaultS3Bucket})
	v.SetDefault("s3.region", DefaultS3Region)
	v.SetDefault("s3.presign_expiry_minutes", DefaultS3PresignExpiry)
}
