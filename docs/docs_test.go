package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestDocListsRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	routes := map[string][]string{
		"/health":                                   {"get"},
		"/jobs/{jobId}":                             {"get"},
		"/projects":                                 {"post"},
		"/projects/{projectId}":                     {"get"},
		"/projects/{projectId}/match":               {"post"},
		"/projects/{projectId}/match/async":         {"post"},
		"/projects/{projectId}/matches/{segmentId}": {"patch"},
		"/segments":                                 {"post"},
		"/videos":                                   {"get", "post"},
		"/videos/{videoId}/tags":                    {"patch"},
	}
	for path, methods := range routes {
		for _, m := range methods {
			if _, ok := doc.Paths[path][m]; !ok {
				t.Errorf("missing %s %s", m, path)
			}
		}
	}
}
