// Package http exposes the hearing board over a small JSON API.
//
// The router serves the following endpoints:
//   - GET /hearings: filtered hearings. Query parameters date_from, date_to
//     (YYYY-MM-DD), time_from, time_to (HH:MM), room (integer or "all"),
//     judge, case_number and party. Response: {"count","hearings","dataset_id"}
//     using the hearingDTO payload defined in hearing_handler.go. Malformed
//     parameters yield 422 with per-field messages.
//   - GET /hearings/export: the same filters plus format=xlsx|csv. Responds
//     with an attachment named audiencias_filtradas.<format>, or 404 when
//     nothing matches.
//   - GET /filters: rooms, judges, date span and default time bounds of the
//     loaded dataset. Carries an ETag derived from the source fingerprint.
//   - POST /dataset/reload: re-reads the source and returns load statistics.
//   - GET /healthz: 200 once a dataset is loaded, 503 before.
//   - GET /metrics: Prometheus exposition when a metrics handler is configured.
//
// Error bodies share the errorResponse shape defined in responder.go.
package http
