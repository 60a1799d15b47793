package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/api"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api/temples/packets"
	"github.com/Nixie-Tech-LLC/darshan/internal/search"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// TemplesModule mounts the read-only directory endpoints. None of them
// touch a session.
func TemplesModule(dir session.Directory) api.Module {
	ctl := &TempleController{dir: dir}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/temples", ctl.listTemples)
		c.PUBLIC_GET("/temples/popular", ctl.listPopular)
		c.PUBLIC_GET("/temples/:id", ctl.getTemple)
		c.PUBLIC_GET("/search", ctl.searchTemples)
	})
}

type TempleController struct {
	dir session.Directory
}

// GET /api/temples
func (t *TempleController) listTemples(ctx *gin.Context) (any, *api.APIError) {
	return packets.NewTempleList(t.dir.List()), nil
}

// GET /api/temples/popular
func (t *TempleController) listPopular(ctx *gin.Context) (any, *api.APIError) {
	return packets.NewTempleList(t.dir.Popular()), nil
}

// GET /api/temples/:id
func (t *TempleController) getTemple(ctx *gin.Context) (any, *api.APIError) {
	rec, ok := t.dir.Lookup(ctx.Param("id"))
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "Temple not found"}
	}
	return packets.NewTempleResponse(rec), nil
}

// GET /api/search?q=
func (t *TempleController) searchTemples(ctx *gin.Context) (any, *api.APIError) {
	q := ctx.Query("q")
	res := search.Filter(q, t.dir.List())
	return packets.SearchResponse{
		Query:     q,
		Visible:   res.Visible,
		NoResults: res.NoResults(),
		Results:   packets.NewTempleList(res.Matches),
	}, nil
}
