// Package ginext is a thin wrapper around gin used by the in-process fake
// Hypernode API server. It pins the SDK to one router surface and keeps gin
// imports out of the test packages themselves.
package ginext

import (
	"github.com/gin-gonic/gin"
)

// Engine wraps a gin.Engine.
type Engine struct {
	*gin.Engine
}

// Context is the per-request context handlers receive.
type Context = gin.Context

// HandlerFunc is a route handler.
type HandlerFunc = gin.HandlerFunc

// H is a shortcut for JSON object literals in handlers.
type H = gin.H

// New returns a bare engine with no middleware attached.
func New() *Engine {
	return &Engine{gin.New()}
}

// NewTest returns a quiet engine for in-process test servers, with gin in
// test mode so nothing is printed on startup.
func NewTest() *Engine {
	gin.SetMode(gin.TestMode)
	return &Engine{gin.New()}
}

func (e *Engine) GET(relativePath string, handlers ...gin.HandlerFunc) {
	e.Engine.GET(relativePath, handlers...)
}

func (e *Engine) POST(relativePath string, handlers ...gin.HandlerFunc) {
	e.Engine.POST(relativePath, handlers...)
}

func (e *Engine) DELETE(relativePath string, handlers ...gin.HandlerFunc) {
	e.Engine.DELETE(relativePath, handlers...)
}

func (e *Engine) Use(middleware ...gin.HandlerFunc) {
	e.Engine.Use(middleware...)
}

func (e *Engine) Run(addr ...string) error {
	return e.Engine.Run(addr...)
}
