package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"github.com/yemou/archivault/pkg/internal/types"
	nlog "github.com/yemou/archivault/pkg/log"
)

// defaultBucket 获取默认 bucket.
func (s *ArchiveService) defaultBucket() (string, error) {
	cfg := s.s3Client.GetConfig()
	if len(cfg.Buckets) == 0 {
		return "", fmt.Errorf("no bucket configured")
	}

	return cfg.Buckets[0], nil
}

// UploadToken 为一次直传签发上传凭证.
// 客户端持 PutURL 直接向对象存储写入，完成后调用 SaveItem 登记.
func (s *ArchiveService) UploadToken(ctx context.Context, owner string, req *types.UploadTokenRequest) (*types.UploadTokenResponse, error) {
	bucket, err := s.defaultBucket()
	if err != nil {
		return nil, err
	}

	objectKey := buildObjectKey(owner, req.FileName)

	putURL, err := s.s3Client.PresignedPutObject(ctx, bucket, objectKey, DefaultPresignedOpTimeout)
	if err != nil {
		return nil, fmt.Errorf("presign put for %s: %w", req.FileName, err)
	}

	s3cfg := s.s3Client.GetConfig()
	blobURL := fmt.Sprintf("%s/%s/%s", s3cfg.GetEndpointURL(), bucket, objectKey)

	return &types.UploadTokenResponse{
		ObjectKey: objectKey,
		PutURL:    putURL.String(),
		BlobURL:   blobURL,
		ExpiresIn: int(DefaultPresignedOpTimeout.Seconds()),
	}, nil
}

// ReadToken 为下载/预览签发读取凭证.
func (s *ArchiveService) ReadToken(ctx context.Context, req *types.ReadTokenRequest) (*types.ReadTokenResponse, error) {
	bucket, err := s.defaultBucket()
	if err != nil {
		return nil, err
	}

	var params url.Values
	if req.Attachment {
		params = url.Values{}
		params.Set("response-content-disposition",
			fmt.Sprintf("attachment; filename=%q", filepath.Base(req.ObjectKey)))
	}

	getURL, err := s.s3Client.PresignedGetObject(ctx, bucket, req.ObjectKey, DefaultPresignedOpTimeout, params)
	if err != nil {
		return nil, fmt.Errorf("presign get for %s: %w", req.ObjectKey, err)
	}

	return &types.ReadTokenResponse{
		GetURL:    getURL.String(),
		ExpiresIn: int(DefaultPresignedOpTimeout.Seconds()),
	}, nil
}

// ProgressFunc 按已传输字节数回调.
type ProgressFunc func(transferred, total int64)

// progressReader 包装读取器，按读取进度回调.
type progressReader struct {
	r           io.Reader
	total       int64
	transferred int64
	fn          ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.transferred += int64(n)
		if pr.fn != nil {
			pr.fn(pr.transferred, pr.total)
		}
	}

	return n, err
}

// TransferBlob 用签名 URL 直传文件字节，并把用户元数据写入存储层
// 元数据头. 缺失的元数据字段写空串.
func (s *ArchiveService) TransferBlob(ctx context.Context, putURL string, body io.Reader, size int64,
	contentType string, meta types.ItemMetadataInput, progress ProgressFunc,
) error {
	reader := &progressReader{r: body, total: size, fn: progress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, putURL, reader)
	if err != nil {
		return fmt.Errorf("build blob transfer request: %w", err)
	}

	req.ContentLength = size

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-amz-meta-title", metaValue(meta.Title))
	req.Header.Set("x-amz-meta-description", metaValue(meta.Description))
	req.Header.Set("x-amz-meta-tags", metaValue(joinTags(meta.Tags)))
	req.Header.Set("x-amz-meta-category", metaValue(meta.Category))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("blob transfer failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("blob transfer returned status %d", resp.StatusCode)
	}

	return nil
}

// DeleteBlob 按对象键或 blob 地址删除对象存储中的文件.
// 供补偿清理调用：条目记录已删但 blob 残留的场景.
func (s *ArchiveService) DeleteBlob(ctx context.Context, req *types.DeleteBlobRequest) error {
	if req.ObjectKey == "" && req.BlobURL == "" {
		return fmt.Errorf("%w: object_key or blob_url is required", ErrValidation)
	}

	if !s.deleteBlob(ctx, req.ObjectKey, req.BlobURL) {
		return fmt.Errorf("blob delete failed")
	}

	return nil
}

// deleteBlob 尽力而为地删除对象存储中的 blob.
// 失败只记日志，不阻断后续的记录清理.
func (s *ArchiveService) deleteBlob(ctx context.Context, objectKey, rawURL string) bool {
	if s.s3Client == nil {
		return false
	}

	bucket, err := s.defaultBucket()
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("blob delete skipped: no bucket")
		return false
	}

	if objectKey == "" {
		objectKey = objectKeyFromURL(rawURL, bucket)
	}

	if objectKey == "" {
		return false
	}

	if err := s.s3Client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		nlog.Logger().Warn().Err(err).Str("object", objectKey).Msg("failed to delete blob")
		return false
	}

	return true
}

// contentTypeFor 按文件名推断 MIME 类型，未知时回退为二进制流.
func contentTypeFor(fileName, declared string) string {
	if declared != "" {
		return declared
	}

	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}

	return "application/octet-stream"
}
