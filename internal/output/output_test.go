package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/chrisdamba/outletplanner/internal/cloudwriter"
	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

var fixedNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func newTestPublisher(dest Destination, collector *metrics.Collector) *Publisher {
	p := NewPublisher(dest, "test", "outletplanner", collector, nil)
	p.now = func() time.Time { return fixedNow }
	return p
}

func envelopeBytes(t *testing.T, calculation, scenarioID string, result any) []byte {
	t.Helper()
	e, err := NewEnvelope(calculation, scenarioID, result, fixedNow)
	require.NoError(t, err)
	msg, err := json.Marshal(e)
	require.NoError(t, err)
	return msg
}

type recordingDestination struct {
	topics   []string
	messages [][]byte
	err      error
}

func (r *recordingDestination) WriteMessage(topic string, msg []byte) error {
	r.topics = append(r.topics, topic)
	r.messages = append(r.messages, msg)
	return r.err
}

func (r *recordingDestination) Close() error { return nil }

type bulkDestination struct {
	recordingDestination
	batches [][]Envelope
}

func (b *bulkDestination) BatchInsert(_ string, envelopes []Envelope) error {
	b.batches = append(b.batches, envelopes)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	dest := &recordingDestination{}
	collector := metrics.NewCollector(nil)
	p := newTestPublisher(dest, collector)

	result := models.Capacity{InternalCapacity: 93, ExternalCapacity: 20, TotalCapacity: 113}
	require.NoError(t, p.Publish("staffing", "s1", result))

	require.Len(t, dest.messages, 1)
	assert.Equal(t, "outletplanner.staffing", dest.topics[0])

	e, err := decodeEnvelope(dest.messages[0])
	require.NoError(t, err)
	assert.Equal(t, "staffing", e.Calculation)
	assert.Equal(t, "s1", e.ScenarioID)
	assert.Equal(t, fixedNow.Unix(), e.Timestamp)
	assert.NotEmpty(t, e.ID)

	var decoded models.Capacity
	require.NoError(t, json.Unmarshal(e.Result, &decoded))
	assert.Equal(t, result, decoded)

	dest.err = errors.New("broker down")
	assert.ErrorContains(t, p.Publish("staffing", "s1", result), "broker down")

	assert.Equal(t, 1.0, collectorCounter(t, collector, "success"))
	assert.Equal(t, 1.0, collectorCounter(t, collector, "error"))
}

func collectorCounter(t *testing.T, c *metrics.Collector, status string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "outletplanner_results_written_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == status {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestPublisher_PublishBatch(t *testing.T) {
	items := []Item{{ScenarioID: "a", Result: 1}, {ScenarioID: "b", Result: 2}}

	plain := &recordingDestination{}
	require.NoError(t, newTestPublisher(plain, nil).PublishBatch("staffing", items))
	assert.Len(t, plain.messages, 2)

	bulk := &bulkDestination{}
	require.NoError(t, newTestPublisher(bulk, nil).PublishBatch("staffing", items))
	require.Len(t, bulk.batches, 1)
	assert.Len(t, bulk.batches[0], 2)
	assert.Empty(t, bulk.messages)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "revenue", Topic("", "revenue"))
	assert.Equal(t, "op.revenue", Topic("op", "revenue"))
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleOutput(&buf)

	require.NoError(t, c.WriteMessage("outletplanner.staffing", []byte(`{"a":1}`)))
	require.NoError(t, c.Close())
	assert.Equal(t, "[outletplanner.staffing] {\"a\":1}\n", buf.String())
}

func TestJSONOutput(t *testing.T) {
	dir := t.TempDir()
	j := NewJSONOutput(dir, "results")

	first := envelopeBytes(t, "staffing", "s1", map[string]int{"total_staff": 14})
	second := envelopeBytes(t, "staffing", "s2", map[string]int{"total_staff": 26})
	require.NoError(t, j.WriteMessage("staffing", first))
	require.NoError(t, j.WriteMessage("staffing", second))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(filepath.Join(dir, "results", "staffing", "year=2024", "month=01", "day=15", "data.json"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, string(first), lines[0])

	assert.Error(t, j.WriteMessage("staffing", []byte("not json")))
}

func TestKafkaOutput(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if !bytes.Contains(val, []byte(`"calculation":"optimization"`)) {
			return errors.New("unexpected payload")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafkaOutputWithProducer(producer, nil)
	msg := envelopeBytes(t, "optimization", "s1", map[string]float64{"cost_savings": 37.5})

	require.NoError(t, k.WriteMessage("outletplanner.optimization", msg))
	assert.ErrorIs(t, k.WriteMessage("outletplanner.optimization", msg), sarama.ErrOutOfBrokers)

	require.NoError(t, k.Close())
	assert.Error(t, k.WriteMessage("outletplanner.optimization", msg))
}

func TestParquetOutput_Local(t *testing.T) {
	dir := t.TempDir()
	p := NewParquetOutput(dir, "results", nil)

	require.NoError(t, p.WriteMessage("revenue", envelopeBytes(t, "revenue", "s1", map[string]float64{"total": 12000})))
	require.NoError(t, p.WriteMessage("revenue", envelopeBytes(t, "revenue", "s2", map[string]float64{"total": 9000})))
	require.NoError(t, p.Close())

	path := filepath.Join(dir, "results", "revenue", "year=2024", "month=01", "day=15", "data.parquet")
	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(ResultRecord), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.EqualValues(t, 2, pr.GetNumRows())
	rows := make([]ResultRecord, 2)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "s1", rows[0].ScenarioID)
	assert.Equal(t, "revenue", rows[1].Calculation)
	assert.JSONEq(t, `{"total": 9000}`, rows[1].Result)
}

type memoryObject struct {
	bytes.Buffer
	closed bool
}

func (m *memoryObject) Close() error {
	m.closed = true
	return nil
}

type memoryFactory struct {
	objects map[string]*memoryObject
}

func (f *memoryFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	obj := &memoryObject{}
	f.objects[bucket+"/"+objectPath] = obj
	return obj, nil
}

func TestParquetOutput_Cloud(t *testing.T) {
	factory := &memoryFactory{objects: map[string]*memoryObject{}}
	p := NewCloudParquetOutput(factory, "bucket", "results", nil)

	require.NoError(t, p.WriteMessage("peak_hours", envelopeBytes(t, "peak_hours", "", map[string]int{"peak": 6})))
	require.NoError(t, p.Close())

	obj, ok := factory.objects["bucket/results/peak_hours/year=2024/month=01/day=15/data.parquet"]
	require.True(t, ok)
	assert.True(t, obj.closed)
	assert.True(t, bytes.HasPrefix(obj.Bytes(), []byte("PAR1")))
}
