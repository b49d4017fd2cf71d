package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/log"
)

// UploadToken 签发直传凭证.
//
//	@Summary		获取上传凭证
//	@Description	为客户端直传生成带签名的 PUT 地址，上传完成后调用 POST /items 注册条目
//	@Tags			凭证
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.UploadTokenRequest	true	"上传凭证请求"
//	@Success		200		{object}	types.UploadTokenResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/api/v1/tokens/upload [post]
func UploadToken(c *gin.Context) {
	l := log.Logger()

	var req types.UploadTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if req.FileSize > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 100MB limit"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	token, err := svc.UploadToken(c.Request.Context(), user, &req)
	if err != nil {
		l.Error().Err(err).Str("file", req.FileName).Msg("issue upload token failed")
		respondError(c, err)

		return
	}

	l.Info().Str("object_key", token.ObjectKey).Msg("upload token issued")
	c.JSON(http.StatusOK, token)
}

// ReadToken 签发读取凭证.
//
//	@Summary	获取读取凭证
//	@Tags		凭证
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.ReadTokenRequest	true	"读取凭证请求"
//	@Success	200		{object}	types.ReadTokenResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/api/v1/tokens/read [post]
func ReadToken(c *gin.Context) {
	var req types.ReadTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := checkUser(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	token, err := svc.ReadToken(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// DeleteBlob 删除对象存储中的 blob.
//
//	@Summary	删除 blob
//	@Description	按对象键或 blob 地址删除对象存储中的文件，尽力而为语义
//	@Tags		凭证
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.DeleteBlobRequest	true	"blob 删除请求"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/api/v1/tokens/delete [post]
func DeleteBlob(c *gin.Context) {
	var req types.DeleteBlobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := checkUser(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	if err := svc.DeleteBlob(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "blob deleted"})
}
