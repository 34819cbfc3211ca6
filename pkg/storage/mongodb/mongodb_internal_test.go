package mongodb

import (
	"smartsite/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBSON(t *testing.T) {
	intent := "roofing quote"
	doc, err := toBSON(domain.DemoRequest{Name: "Bo", Phone: "555", SampleIntent: &intent})
	require.NoError(t, err)
	require.Equal(t, "Bo", doc["name"])
	require.Equal(t, "555", doc["phone"])
	require.Equal(t, intent, doc["sample_intent"])

	doc, err = toBSON(domain.Lead{Name: "Ana", Phone: "1", Source: "demo"})
	require.NoError(t, err)
	require.NotContains(t, doc, "email")
	require.NotContains(t, doc, "notes")

	_, err = toBSON(42)
	require.Error(t, err)
}
