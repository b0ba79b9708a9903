//go:build embed
// +build embed

package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed web/templates web/static
var webAssets embed.FS

// setupTemplates serves the form from assets compiled into the binary
func setupTemplates(router *gin.Engine, _ string, zlog *zap.Logger) {
	zlog.Info("using embedded web assets")

	tmpl, err := template.ParseFS(webAssets, "web/templates/*.html")
	if err != nil {
		zlog.Fatal("failed to parse embedded templates", zap.Error(err))
	}
	router.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(webAssets, "web/static")
	if err != nil {
		zlog.Fatal("failed to get static subdirectory", zap.Error(err))
	}
	router.StaticFS("/static", http.FS(staticFS))

	router.NoRoute(notFound)
}
