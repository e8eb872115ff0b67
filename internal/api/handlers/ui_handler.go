package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// uiStub is served when no asset bundle is mounted. It only has to look like
// a real single-page control UI from the outside.
const uiStub = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>OpenClaw Control</title>
<style>
  body { margin:0; background:#0d1117; color:#e6edf3; font-family:-apple-system,system-ui,sans-serif; }
  .wrap { display:flex; align-items:center; justify-content:center; height:100vh; flex-direction:column; }
  .spinner { width:32px; height:32px; border:3px solid #30363d; border-top-color:#e6b43c; border-radius:50%; animation:spin 1s linear infinite; }
  @keyframes spin { to { transform:rotate(360deg); } }
  p { color:#8b949e; font-size:14px; }
</style>
</head>
<body>
<div class="wrap">
  <div class="spinner"></div>
  <p>Connecting to gateway&hellip;</p>
</div>
<script src="/assets/app.js" defer></script>
</body>
</html>
`

// ControlUI serves the fake control-UI entry point. A mounted UI_DIR wins;
// the built-in stub answers otherwise.
func (e *Env) ControlUI(c *gin.Context) {
	if e.Cfg.UIDir != "" {
		index := filepath.Join(e.Cfg.UIDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, uiStub)
}

// StaticAsset serves files from the mounted bundle under /assets/.
func (e *Env) StaticAsset(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	if e.Cfg.UIDir != "" && rel != "" && !strings.Contains(rel, "..") {
		full := filepath.Join(e.Cfg.UIDir, "assets", rel)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
	}
	c.Status(http.StatusNotFound)
}
