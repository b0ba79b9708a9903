//go:build !embed
// +build !embed

package main

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupTemplates serves the form from webDir on disk so edits show up on reload
func setupTemplates(router *gin.Engine, webDir string, zlog *zap.Logger) {
	zlog.Info("using web assets from disk (development mode)", zap.String("web_dir", webDir))

	router.LoadHTMLGlob(filepath.Join(webDir, "templates", "*.html"))
	router.Static("/static", filepath.Join(webDir, "static"))

	router.NoRoute(notFound)
}
