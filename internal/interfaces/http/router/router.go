// Package router mounts the HTTP handlers on gin. Every resource is
// described by a DomainGroup; Groups in routes.go is the full route table
// with the role guards applied per route.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultAPIVersion = "v1"

// RouteRegistrar mounts its routes below the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version> on Setup.
type Router struct {
	engine     *gin.Engine
	version    string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: defaultAPIVersion}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware that runs before every API route but not the probes.
func (r *Router) Use(mw ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, mw...)
	return r
}

func (r *Router) Register(reg RouteRegistrar) *Router {
	r.registrars = append(r.registrars, reg)
	return r
}

func (r *Router) BasePath() string { return "/api/" + r.version }

func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.middleware...)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup is the route set of one resource. Group middleware runs
// first, then the per-route guards, then the handler.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (g *DomainGroup) Name() string   { return g.name }
func (g *DomainGroup) Prefix() string { return g.prefix }

func (g *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	g.middleware = append(g.middleware, mw...)
	return g
}

func (g *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

func (g *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodGet, path, h...)
}

func (g *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPost, path, h...)
}

func (g *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPut, path, h...)
}

func (g *DomainGroup) PATCH(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPatch, path, h...)
}

func (g *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodDelete, path, h...)
}

// Group returns a child mounted below g's prefix and middleware.
func (g *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	g.children = append(g.children, child)
	return child
}

func (g *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	mounted := rg.Group(g.prefix, g.middleware...)
	for _, rt := range g.routes {
		mounted.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(mounted)
	}
}

// Routes lists "METHOD /path" for g and its children, relative to the API
// base path.
func (g *DomainGroup) Routes() []string {
	return g.collect(nil, "")
}

func (g *DomainGroup) collect(out []string, parent string) []string {
	base := parent + g.prefix
	for _, rt := range g.routes {
		out = append(out, rt.method+" "+base+rt.path)
	}
	for _, child := range g.children {
		out = child.collect(out, base)
	}
	return out
}
