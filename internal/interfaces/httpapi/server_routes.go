package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/players/{playerID}/score", handler.GetPlayerScore)
	mux.HandleFunc("GET /v1/matches/{matchID}/performances", handler.ListMatchPerformances)
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/scoring/rules", handler.ListScoringRules)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/users/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("GET /v1/teams/{teamID}/score", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamScore)))
	mux.Handle("POST /v1/contests/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinContest)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshLiveJob)))
	mux.Handle("POST /v1/matches/{matchID}/performances", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestPerformance)))
}
