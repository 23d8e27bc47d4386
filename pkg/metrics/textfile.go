package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the global registry in the text exposition format, for
// pickup by a node exporter textfile collector. The write is atomic.
func WriteTextfile(path string) error {
	return writeTextfile(path, customRegistry)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
