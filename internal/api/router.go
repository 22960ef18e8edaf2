package api

import "net/http"

// RegisterRoutes wires all authenticated routes. Health and swagger are
// registered by main outside the auth middleware.
func RegisterRoutes(mux *http.ServeMux, h *Handler, jwtSecret string) {
	user := Auth(jwtSecret)
	admin := func(fn http.HandlerFunc) http.Handler {
		return user(RequireAdmin(fn))
	}
	authed := func(fn http.HandlerFunc) http.Handler {
		return user(fn)
	}

	// Exams
	mux.Handle("POST /exams", authed(h.startExam))
	mux.Handle("GET /exams/active", authed(h.getActiveExam))
	mux.Handle("GET /exams/history", authed(h.examHistory))
	mux.Handle("GET /exams/{sessionID}", authed(h.resumeExam))
	mux.Handle("POST /exams/{sessionID}/answers", authed(h.submitAnswer))
	mux.Handle("POST /exams/{sessionID}/end", authed(h.endExam))
	mux.Handle("POST /exams/{sessionID}/abandon", authed(h.abandonExam))
	mux.Handle("GET /exams/{sessionID}/report", authed(h.getReport))

	// Progress & leaderboard
	mux.Handle("GET /users/me/progress", authed(h.userProgress))
	mux.Handle("GET /leaderboard", authed(h.getLeaderboard))

	// Question bank management
	mux.Handle("POST /questions", admin(h.createQuestion))
	mux.Handle("GET /questions", admin(h.listQuestions))
	mux.Handle("GET /questions/{questionID}", admin(h.getQuestion))
	mux.Handle("PUT /questions/{questionID}", admin(h.updateQuestion))
	mux.Handle("DELETE /questions/{questionID}", admin(h.deleteQuestion))
}
