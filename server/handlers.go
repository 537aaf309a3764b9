package server

import "net/http"

const contentTypeHTML = "text/html; charset=utf-8"

// IndexHandler renders the home page. A browser that already holds a
// session goes straight to the portfolio.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()).Authenticated() {
			redirectSuccess(w, r, RoutePortfolio)
			return
		}

		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}
