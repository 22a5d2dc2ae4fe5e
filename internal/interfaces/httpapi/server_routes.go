package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
	mux.HandleFunc("GET /v1/teams", handler.SearchTeams)
	mux.HandleFunc("GET /v1/teams/details", handler.SearchTeamDetails)
	mux.HandleFunc("GET /v1/leagues", handler.SearchLeaguesByTeam)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/groups", RequireAuth(verifier, http.HandlerFunc(handler.CreateGroup)))
	mux.Handle("GET /v1/groups", RequireAuth(verifier, http.HandlerFunc(handler.ListGroups)))
	mux.Handle("GET /v1/groups/{groupID}", RequireAuth(verifier, http.HandlerFunc(handler.GetGroupDetails)))
	mux.Handle("PUT /v1/groups/{groupID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateGroup)))
	mux.Handle("DELETE /v1/groups/{groupID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGroup)))
	mux.Handle("POST /v1/groups/{groupID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.AddTeamToGroup)))
	mux.Handle("DELETE /v1/groups/{groupID}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveTeamFromGroup)))
}
