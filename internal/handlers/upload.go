package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/pkg/logger"
)

const editorCallbackScript = `<script type="text/javascript">
  window.parent.CKEDITOR.tools.callFunction(%d, '%s', '%s');
</script>`

// UploadHandler receives files posted by the rich-text editor.
type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// EditorUpload stores the "upload" file and answers with the editor's
// callback script. Failures are reported in the script, never as an HTTP error.
// POST /admin/ckupload/?CKEditorFuncNum=<n>
func (h *UploadHandler) EditorUpload(c *gin.Context) {
	callback, err := strconv.Atoi(c.Query("CKEditorFuncNum"))
	if err != nil {
		callback = 0
	}

	url, errCode := h.store(c)
	body := fmt.Sprintf(editorCallbackScript, callback, template.JSEscapeString(url), template.JSEscapeString(errCode))
	c.Data(http.StatusOK, "text/html", []byte(body))
}

func (h *UploadHandler) store(c *gin.Context) (url, errCode string) {
	header, err := c.FormFile("upload")
	if err != nil {
		return "", services.StorageNoFilePosted
	}
	f, err := header.Open()
	if err != nil {
		return "", services.StorageNoFilePosted
	}
	defer f.Close()

	url, err = h.uploads.StoreEditorFile(f, header.Filename)
	if err != nil {
		code := services.StorageCode(err)
		if code == "" {
			code = services.StorageWriteFailed
		}
		logger.Warn().Err(err).Str("file", header.Filename).Msg("editor upload failed")
		return "", code
	}
	return url, ""
}
