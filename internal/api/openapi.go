package api

import "net/http"

// openAPISpec is served at /docs/doc.json for the swagger UI. Kept static —
// the surface is small enough that generated docs are not worth the build
// step.
const openAPISpec = `{
  "openapi": "3.0.0",
  "info": {
    "title": "AFL Coach Data API",
    "description": "Fantasy companion API: dashboard, captain suggestions, trade scoring, cash-cow tracking, and alerts.",
    "version": "1.0.0"
  },
  "paths": {
    "/api/v1/dashboard": {"get": {"summary": "Combined team summary", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/players": {"get": {"summary": "Full player list", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/players/{playerID}": {"get": {"summary": "One player with price history", "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown player"}}}},
    "/api/v1/captains": {"get": {"summary": "Ranked captain suggestions", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/trades/score": {"post": {"summary": "Score a proposed trade", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/cashcows": {"get": {"summary": "Cash-cow sell timing", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/alerts": {"get": {"summary": "Active alerts", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/alerts/history": {"get": {"summary": "Alert history", "responses": {"200": {"description": "OK"}}}},
    "/api/v1/alerts/scan": {"post": {"summary": "Trigger an alert scan", "responses": {"200": {"description": "OK"}}}},
    "/health": {"get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}}
  }
}`

func serveOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(openAPISpec))
}
