package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/types"
)

// API serves the /request endpoints.
type API struct {
	users    *services.UserService
	catalog  *services.CatalogService
	curation *services.CurationService
	logger   *log.Logger
}

// NewAPI constructs an API with the provided services.
func NewAPI(
	users *services.UserService,
	catalog *services.CatalogService,
	curation *services.CurationService,
	logger *log.Logger,
) *API {
	return &API{
		users:    users,
		catalog:  catalog,
		curation: curation,
		logger:   logger,
	}
}

// login authenticates the request's credentials. It writes the failure
// response itself and reports whether the handler may continue.
func (a *API) login(w http.ResponseWriter, r *http.Request, creds *Credentials) (types.User, bool) {
	user, err := a.users.Authenticate(r.Context(), *creds.Username, *creds.Password)
	if err != nil {
		a.fail(w, r, err)
		return types.User{}, false
	}
	return user, true
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, a.logger, err)
}
