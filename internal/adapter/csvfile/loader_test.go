package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/couchcryptid/crash-stats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Crash Date,Day Of Week,Hour Of Day,Crash Type,Crash Severity,Crash Location,Alcohol Involved
2021-03-14T18:22:00Z,1,18,Angle,Possible Injury,Oak St & Elm St,Yes
2021-03-15T07:05:00Z,2,7,Rear End,No Injury,Elm St & Oak St,No
`

func newTestLoader() *Loader {
	return NewLoader(',', slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crashes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeFile(t, testCSV)

	records, err := newTestLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, []string{
		domain.FieldCrashDate, domain.FieldDayOfWeek, domain.FieldHourOfDay, domain.FieldCrashType,
		domain.FieldCrashSeverity, domain.FieldCrashLocation, domain.FieldAlcoholInvolved,
	}, first.Fields)
	assert.Equal(t, "Angle", first.Label(domain.FieldCrashType))
	assert.Equal(t, "Elm St & Oak St", first.Label(domain.FieldCrashLocation))
	assert.True(t, first.IsTrue(domain.FieldAlcoholInvolved))
	assert.Equal(t, domain.NumberValue(18), first.Values[domain.FieldHourOfDay])

	second := records[1]
	assert.Equal(t, "Rear End", second.Label(domain.FieldCrashType))
	assert.Equal(t, first.Label(domain.FieldCrashLocation), second.Label(domain.FieldCrashLocation))
	assert.False(t, second.IsTrue(domain.FieldAlcoholInvolved))
}

func TestLoader_Decode(t *testing.T) {
	t.Run("preserves file order", func(t *testing.T) {
		in := "Crash Type\nA\nB\nC\n"
		records, err := newTestLoader().Decode(context.Background(), strings.NewReader(in), "inline")
		require.NoError(t, err)

		labels := make([]string, 0, len(records))
		for _, r := range records {
			labels = append(labels, r.Label(domain.FieldCrashType))
		}
		assert.Equal(t, []string{"A", "B", "C"}, labels)
	})

	t.Run("empty input", func(t *testing.T) {
		records, err := newTestLoader().Decode(context.Background(), strings.NewReader(""), "inline")
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NotNil(t, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := newTestLoader().Decode(context.Background(), strings.NewReader("Crash Type\n"), "inline")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		loader := NewLoader(';', slog.New(slog.NewTextHandler(io.Discard, nil)))
		records, err := loader.Decode(context.Background(), strings.NewReader("Crash Type;Hour Of Day\nAngle;4\n"), "inline")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Angle", records[0].Label(domain.FieldCrashType))
	})
}

func TestLoader_DecodeErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		records, err := newTestLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

		assert.Nil(t, records)
		var derr *domain.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.PhaseOpen, derr.Phase)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed row", func(t *testing.T) {
		path := writeFile(t, "Crash Type,Crash Severity\nAngle,Minor\nAngle,\"Fatal\"x\n")
		records, err := newTestLoader().Load(context.Background(), path)

		assert.Nil(t, records)
		var derr *domain.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.PhaseRow, derr.Phase)
		assert.Equal(t, 3, derr.Line)
		assert.ErrorIs(t, err, csv.ErrQuote)
	})

	t.Run("wrong field count", func(t *testing.T) {
		in := "Crash Type,Crash Severity\nAngle\n"
		_, err := newTestLoader().Decode(context.Background(), strings.NewReader(in), "inline")

		var derr *domain.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.PhaseRow, derr.Phase)
		assert.ErrorIs(t, err, csv.ErrFieldCount)
	})

	t.Run("stream failure", func(t *testing.T) {
		boom := errors.New("disk went away")
		r := io.MultiReader(strings.NewReader("Crash Type\nAngle\n"), iotest.ErrReader(boom))
		_, err := newTestLoader().Decode(context.Background(), r, "inline")

		var derr *domain.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.PhaseRow, derr.Phase)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("header failure", func(t *testing.T) {
		boom := errors.New("permission denied")
		_, err := newTestLoader().Decode(context.Background(), iotest.ErrReader(boom), "inline")

		var derr *domain.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.PhaseOpen, derr.Phase)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestLoader().Decode(ctx, strings.NewReader(testCSV), "inline")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNormalizeHeader(t *testing.T) {
	got := NormalizeHeader([]string{"\ufeffCrash Date", " Crash\tType ", "Hour Of Day", "Plain"})
	assert.Equal(t, []string{"CrashDate", "CrashType", "HourOfDay", "Plain"}, got)
}
