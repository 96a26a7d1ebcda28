package providers

import (
	"net/http"
	"potatoguard/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	order    []string
	handlers map[string]map[string]http.Handler
}

func (rp *RouterProvider) register(method, url string, handler http.Handler) {
	if _, ok := rp.handlers[url]; !ok {
		rp.handlers[url] = make(map[string]http.Handler)
		rp.order = append(rp.order, url)
	}
	rp.handlers[url][method] = handler
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.register(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.register(http.MethodPost, url, handler)
}

// GetRoutes emits one route per URL; a URL registered for several methods
// dispatches on the request method and rejects the rest.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.order))
	for _, url := range rp.order {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodHandler(rp.handlers[url]),
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{handlers: make(map[string]map[string]http.Handler)}
}

func methodHandler(byMethod map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := byMethod[r.Method]
		if !ok {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
