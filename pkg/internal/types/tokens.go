package types

// UploadTokenRequest 请求上传凭证.
type UploadTokenRequest struct {
	FileName string `json:"file_name" rule:"required,max=255"` // 文件名
	FileType string `json:"file_type,omitempty"`               // MIME 类型（可选，省略时按扩展名推断）
	FileSize int64  `json:"file_size,omitempty"`               // 文件大小（字节）
	Folder   string `json:"folder,omitempty"`                  // 目标目录，空为根目录
}

// UploadTokenResponse 上传凭证.
// PutURL 是带签名的直传地址，客户端持之直接向对象存储写入.
type UploadTokenResponse struct {
	ObjectKey string `json:"object_key"`
	PutURL    string `json:"put_url"`
	BlobURL   string `json:"blob_url"`   // 上传完成后的可读地址
	ExpiresIn int    `json:"expires_in"` // 过期时间（秒）
}

// ReadTokenRequest 请求下载/预览凭证.
type ReadTokenRequest struct {
	ObjectKey string `json:"object_key" rule:"required"`
	// Attachment 为 true 时按附件下载（Content-Disposition）
	Attachment bool `json:"attachment,omitempty"`
}

// ReadTokenResponse 下载凭证.
type ReadTokenResponse struct {
	GetURL    string `json:"get_url"`
	ExpiresIn int    `json:"expires_in"`
}

// DeleteBlobRequest 请求删除对象存储中的 blob.
// 与条目删除解耦：条目记录已清理但 blob 残留时由客户端补偿调用.
type DeleteBlobRequest struct {
	ObjectKey string `json:"object_key,omitempty"`
	BlobURL   string `json:"blob_url,omitempty"` // 提供 URL 时由服务端解析对象键
}
