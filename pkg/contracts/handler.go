package contracts

import "github.com/julienschmidt/httprouter"

// Handler is one domain's HTTP surface. The application mounts every Handler on
// a shared router, so route paths must not collide across domains.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
