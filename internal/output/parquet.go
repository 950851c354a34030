package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/outletplanner/internal/cloudwriter"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ResultRecord is the flat parquet row for one envelope.
type ResultRecord struct {
	ID          string `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Topic       string `parquet:"name=topic, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Calculation string `parquet:"name=calculation, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ScenarioID  string `parquet:"name=scenario_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp   int64  `parquet:"name=timestamp, type=INT64"`
	Result      string `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func newResultRecord(topic string, e Envelope) *ResultRecord {
	return &ResultRecord{
		ID:          e.ID,
		Topic:       topic,
		Calculation: e.Calculation,
		ScenarioID:  e.ScenarioID,
		Timestamp:   e.Timestamp,
		Result:      string(e.Result),
	}
}

type parquetTarget struct {
	mu   sync.Mutex
	pw   *writer.ParquetWriter
	file source.ParquetFile
}

// ParquetOutput writes one parquet file per topic and day partition,
// locally or to a bucket through a CloudWriterFactory. Files are only
// complete after Close.
type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	targets            map[string]*parquetTarget
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	logger             *zap.Logger
}

func NewParquetOutput(basePath, folder string, logger *zap.Logger) *ParquetOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParquetOutput{
		basePath: basePath,
		folder:   folder,
		targets:  make(map[string]*parquetTarget),
		logger:   logger,
	}
}

func NewCloudParquetOutput(factory cloudwriter.CloudWriterFactory, bucket, folder string, logger *zap.Logger) *ParquetOutput {
	p := NewParquetOutput("", folder, logger)
	p.cloudWriterFactory = factory
	p.cloudBucketName = bucket
	return p
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	envelope, err := decodeEnvelope(msg)
	if err != nil {
		return err
	}

	partition := partitionPath(envelope)
	key := topic + "_" + partition

	p.mu.Lock()
	target, ok := p.targets[key]
	if !ok {
		target, err = p.createTarget(topic, partition)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		p.targets[key] = target
	}
	p.mu.Unlock()

	target.mu.Lock()
	defer target.mu.Unlock()
	if err := target.pw.Write(newResultRecord(topic, envelope)); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createTarget(topic, partition string) (*parquetTarget, error) {
	var (
		fw  source.ParquetFile
		err error
	)
	if p.cloudWriterFactory != nil {
		objectPath := cloudwriter.ObjectKey(p.folder, topic, partition, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = newCloudParquetFile(cw)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(ResultRecord), 4)
	if err != nil {
		fw.Close()
		return nil, err
	}
	return &parquetTarget{pw: pw, file: fw}, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for key, target := range p.targets {
		target.mu.Lock()
		if stopErr := target.pw.WriteStop(); stopErr != nil {
			p.logger.Error("failed to finish parquet file", zap.String("key", key), zap.Error(stopErr))
			err = multierr.Append(err, stopErr)
		}
		if closeErr := target.file.Close(); closeErr != nil {
			p.logger.Error("failed to close parquet file", zap.String("key", key), zap.Error(closeErr))
			err = multierr.Append(err, closeErr)
		}
		target.mu.Unlock()
		delete(p.targets, key)
	}
	return err
}

// cloudParquetFile adapts a write-only CloudWriter to the parquet
// source interface.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, errors.New("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read([]byte) (int, error) {
	return 0, errors.New("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(b []byte) (int, error) {
	n, err := c.cloudWriter.Write(b)
	c.offset += int64(n)
	return n, err
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
