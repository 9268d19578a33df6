package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var files embed.FS

// NewEngine returns the html template engine backed by the embedded views.
func NewEngine() *html.Engine {
	views, err := fs.Sub(files, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFunc("join", strings.Join)
	return engine
}
