package feed

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
)

const plantFeed = `timestamp,source,value
2024-05-01T12:00:00Z,sensor1,48.5
2024-05-01T12:00:01Z,sensor2,0.7
2024-05-01T12:00:02Z,sensor9,1.0
2024-05-01T12:00:03Z,sensor3,81
2024-05-01T12:00:04Z,sensor1,n/a
2024-05-01T12:00:05Z,sensor1
2024-05-01T12:00:06Z,sensor1,NaN
2024-05-01T12:00:07Z,sensor1,52.25
`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(plantFeed), nil)

	require.Len(t, records, 4)
	assert.Equal(t, Record{Line: 2, Source: "sensor1", SensorID: "temperature", Value: 48.5}, records[0])
	assert.Equal(t, Record{Line: 3, Source: "sensor2", SensorID: "current", Value: 0.7}, records[1])
	assert.Equal(t, Record{Line: 5, Source: "sensor3", SensorID: "humidity", Value: 81}, records[2])
	assert.Equal(t, Record{Line: 9, Source: "sensor1", SensorID: "temperature", Value: 52.25}, records[3])

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidValue)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Len(t, err.(interface{ Unwrap() []error }).Unwrap(), 3)
}

func TestReadCSVCustomSources(t *testing.T) {
	feed := "ts,source,value\n1,boiler,10\n2,sensor1,20\n"

	records, err := ReadCSV(strings.NewReader(feed), map[string]string{"boiler": "boiler-temp"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "boiler-temp", records[0].SensorID)
}

func TestReaderHeaderOnly(t *testing.T) {
	reader := NewReader(strings.NewReader("timestamp,source,value\n"), nil)

	_, err := reader.Next()
	assert.True(t, errors.Is(err, io.EOF))
}
