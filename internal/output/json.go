package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// JSONOutput appends envelopes as JSON lines to files partitioned by
// topic and the envelope's date.
type JSONOutput struct {
	basePath string
	folder   string
	mu       sync.Mutex
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func partitionPath(e Envelope) string {
	year, month, day := e.Time().Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	envelope, err := decodeEnvelope(msg)
	if err != nil {
		return err
	}

	partition := partitionPath(envelope)
	fullPath := filepath.Join(j.basePath, j.folder, topic, partition)
	fileKey := topic + "_" + partition

	j.mu.Lock()
	defer j.mu.Unlock()

	file, ok := j.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var err error
	for key, file := range j.files {
		err = multierr.Append(err, file.Close())
		delete(j.files, key)
	}
	return err
}
