package mtgjson

import "testing"

// setupSampleClient creates a Client with sample data for testing (no network).
func setupSampleClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(WithCacheDir(t.TempDir()), WithOffline(true))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}
