package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/md-rashed-zaman/fuelstation/libs/auth"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
)

type crud interface {
	Create(http.ResponseWriter, *http.Request)
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
	Report(http.ResponseWriter, *http.Request)
}

// Router builds the /api route table. mw runs after route matching, so
// RouteTemplate is available to it.
func (a *API) Router(mw ...httpx.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	for _, m := range mw {
		if m != nil {
			r.Use(mux.MiddlewareFunc(m))
		}
	}

	var signedIn, admin httpx.Middleware
	if a.auth.Required {
		signedIn = auth.RequireAuth(a.auth.Secret)
		admin = auth.RequireType(model.UserTypeAdmin)
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/appointment/slots", a.availableSlots).Methods(http.MethodGet)
	mount(api, "/appointment", a.appointments, signedIn, http.HandlerFunc(a.appointments.Create))
	mount(api, "/employee", a.employees, signedIn, nil)
	mount(api, "/attendance", a.attendance, signedIn, nil)

	api.HandleFunc("/fuel-users/login", a.login).Methods(http.MethodPost)
	mount(api, "/fuel-users", a.fuelUsers, chain(signedIn, admin), nil)

	mount(api, "/products", a.products, signedIn, nil)
	mount(api, "/sales", a.sales, signedIn, nil)
	mount(api, "/salaries", a.salaries, signedIn, nil)
	mount(api, "/service-types", a.serviceTypes, signedIn, nil)
	mount(api, "/utility-expenses", a.utilityExpenses, signedIn, nil)
	return r
}

// mount registers the collection routes of h under base. create, when set,
// replaces the guarded create handler.
func mount(r *mux.Router, base string, h crud, guard httpx.Middleware, create http.Handler) {
	wrap := func(fn http.HandlerFunc) http.Handler { return httpx.Chain(fn, guard) }
	if create == nil {
		create = wrap(h.Create)
	}

	for _, path := range []string{base, base + "/"} {
		r.Handle(path, create).Methods(http.MethodPost)
		r.Handle(path, wrap(h.List)).Methods(http.MethodGet)
	}
	r.Handle(base+"/report", wrap(h.Report)).Methods(http.MethodGet)
	r.Handle(base+"/{id}", wrap(h.Get)).Methods(http.MethodGet)
	r.Handle(base+"/{id}", wrap(h.Update)).Methods(http.MethodPut)
	r.Handle(base+"/{id}", wrap(h.Delete)).Methods(http.MethodDelete)
}

func chain(m ...httpx.Middleware) httpx.Middleware {
	return func(next http.Handler) http.Handler { return httpx.Chain(next, m...) }
}

// RouteTemplate labels a matched request with its route pattern.
func RouteTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return ""
}
