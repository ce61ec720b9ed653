// Package api exposes the BioMentor AI feature surface over HTTP as a
// JSON API.
//
// Endpoints:
//   - GET  /health                             — liveness probe
//   - GET  /ready                              — readiness (includes pool stats when configured)
//   - GET  /api/v1/topics                      — curriculum topic catalog
//   - GET  /api/v1/topics/{id}                 — one topic by key or short ID
//   - GET  /api/v1/search                      — raw retrieval (debugging aid)
//   - POST /api/v1/chat                        — tutoring chat
//   - POST /api/v1/quiz                        — quiz generation
//   - POST /api/v1/learning-path               — learning path generation
//   - POST /api/v1/report                      — study report generation
//   - POST /api/v1/features/exam-predictor    — exam readiness prediction
//   - POST /api/v1/features/diagram           — Mermaid diagram creation
//   - POST /api/v1/features/mistake-analyzer  — quiz mistake analysis
//   - POST /api/v1/features/revision          — timed revision session
//   - POST /api/v1/features/roadmap           — multi-week study roadmap
//
// Generation endpoints always answer 200 with a usable payload; when
// the backend is unavailable the payload is a canned response carrying
// a disclaimer.
package api
