// Package rag implements the retrieval layer of the tutoring backend:
// corpus chunking, dual-strategy retrieval (vector similarity via
// pgvector, or in-process keyword scoring), and assembly of retrieved
// chunks into a grounding context string for generation calls.
//
// The retrieval strategy is chosen once at service construction. Vector
// mode requires an embedder and a reachable document store; any failure
// during initialization or at query time silently degrades to keyword
// mode, which has no external dependencies and never fails.
package rag
