package api

import "github.com/gin-gonic/gin"

// Controller registers endpoints on a group. The plain verbs need a
// session; the PUBLIC_ variants do not.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithSession) {
	c.Group.GET(path, ResolveEndpointWithSession(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithSession) {
	c.Group.POST(path, ResolveEndpointWithSession(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithSession) {
	c.Group.PUT(path, ResolveEndpointWithSession(h))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithSession) {
	c.Group.DELETE(path, ResolveEndpointWithSession(h))
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}
