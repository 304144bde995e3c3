// Package contracts holds the small interfaces the application bootstrap
// accepts, keeping pkg/app decoupled from the feature packages.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts one feature's routes on the shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
