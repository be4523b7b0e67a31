package logger

import "time"

// Field keys shared by every package, so log queries can rely on them.
const (
	FieldComponent     = "component"
	FieldCorrelationID = "correlation_id"
	FieldOperation     = "operation"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatus        = "status"
	FieldPage          = "page"
	FieldItems         = "items"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
)

// Fields builds a field map from alternating key-value pairs. Pairs with a
// non-string key and a trailing odd value are dropped.
//
//	log.Info("artifact downloaded", logger.Fields("artifact_id", id, "bytes", n))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RequestFields describes one API round trip. A zero status is left out.
func RequestFields(method, path string, status int, d time.Duration) map[string]any {
	m := map[string]any{
		FieldMethod:   method,
		FieldPath:     path,
		FieldDuration: d.Milliseconds(),
	}
	if status != 0 {
		m[FieldStatus] = status
	}
	return m
}
