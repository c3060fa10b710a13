package agent

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
)

// compressJSON marshals data to JSON and gzips it.
func compressJSON(data any) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if err := json.NewEncoder(gw).Encode(data); err != nil {
		return nil, fmt.Errorf("json encode error: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("gzip close error: %w", err)
	}

	return buf.Bytes(), nil
}
