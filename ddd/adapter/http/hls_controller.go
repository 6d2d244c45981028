package http

import (
	nethttp "net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"video-hosting-service/ddd/domain/service"
	"video-hosting-service/pkg/restapi"
)

const (
	manifestFilename    = "index.m3u8"
	contentTypeManifest = "application/vnd.apple.mpegurl"
	contentTypeSegment  = "video/MP2T"
)

// HLSController serves manifests and segments straight off the media root.
// Every miss, whatever its cause, is a plain 404.
type HLSController struct {
	resolver *service.PathResolver
}

// NewHLSController 创建HLS控制器
func NewHLSController(resolver *service.PathResolver) *HLSController {
	return &HLSController{resolver: resolver}
}

// GetAsset GET /api/v1/videos/:id/:quality/:file
//
// One route covers both the manifest (fixed name index.m3u8) and the
// segments; gin cannot register a static leaf next to a param leaf.
func (c *HLSController) GetAsset(ctx *gin.Context) {
	videoID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		restapi.NotFound(ctx)
		return
	}

	filename := ctx.Param("file")
	path, err := c.resolver.Resolve(videoID, ctx.Param("quality"), filename)
	if err != nil {
		restapi.NotFound(ctx)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		restapi.NotFound(ctx)
		return
	}

	contentType := contentTypeSegment
	if filename == manifestFilename {
		contentType = contentTypeManifest
	}

	// Set the type before handing off; ServeFile would otherwise sniff it.
	// ServeFile streams and honors Range requests, so large segments never
	// get buffered in memory.
	ctx.Header("Content-Type", contentType)
	nethttp.ServeFile(ctx.Writer, ctx.Request, path)
}
