package trace

import (
	"context"
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/blobstore"
	"github.com/hupe1980/kmeansviz/codec"
	"github.com/hupe1980/kmeansviz/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordRun(t *testing.T, eng *kmeansviz.Engine) *Trace {
	t.Helper()

	rec := NewRecorder()
	rec.Begin(eng)
	for !eng.Converged() {
		res, err := eng.Step()
		require.NoError(t, err)
		rec.Record(res)
	}
	return rec.Trace()
}

func randomTrace(t *testing.T) *Trace {
	t.Helper()
	eng := kmeansviz.New(kmeansviz.WithSeed(42))
	eng.Reset(4, 40)
	return recordRun(t, eng)
}

func TestRecorder(t *testing.T) {
	points, seeds := testutil.TwoPairs()
	eng := kmeansviz.New()
	require.NoError(t, eng.Load(points, seeds))

	tr := recordRun(t, eng)

	assert.Equal(t, 2, tr.K)
	assert.Equal(t, kmeansviz.DefaultConvergenceThreshold, tr.Threshold)
	assert.Equal(t, points, tr.Points)
	assert.Equal(t, seeds, tr.Seeds)
	assert.Len(t, tr.Steps, 10)
	assert.True(t, tr.Converged())
	assert.Equal(t, 2, tr.Iterations())
}

func TestRecorder_BeginResets(t *testing.T) {
	eng := kmeansviz.New(kmeansviz.WithSeed(1))
	eng.Reset(3, 10)

	rec := NewRecorder()
	rec.Begin(eng)
	res, err := eng.Step()
	require.NoError(t, err)
	rec.Record(res)
	assert.Equal(t, 1, rec.Len())

	eng.Reset(2, 5)
	rec.Begin(eng)
	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, 2, rec.Trace().K)
	assert.Len(t, rec.Trace().Points, 5)
}

func TestRecorder_TraceIsCopy(t *testing.T) {
	eng := kmeansviz.New(kmeansviz.WithSeed(1))
	eng.Reset(2, 4)

	rec := NewRecorder()
	rec.Begin(eng)

	tr := rec.Trace()
	tr.Points[0].X = -1
	tr.Seeds[0] = 99

	again := rec.Trace()
	assert.NotEqual(t, -1.0, again.Points[0].X)
	assert.NotEqual(t, 99, again.Seeds[0])
}

func TestTrace_Empty(t *testing.T) {
	var tr Trace
	assert.False(t, tr.Converged())
	assert.Equal(t, 0, tr.Iterations())
}

func TestMarshalUnmarshal(t *testing.T) {
	want := randomTrace(t)

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			t.Run(c.Name()+"/"+comp.String(), func(t *testing.T) {
				data, err := Marshal(want, WithCodec(c), WithCompression(comp))
				require.NoError(t, err)

				got, h, err := Unmarshal(data)
				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Equal(t, Version, h.Version)
				assert.Equal(t, c.Name(), h.Codec)
				assert.Equal(t, comp, h.Compression)
			})
		}
	}
}

func TestMarshal_CompressionShrinks(t *testing.T) {
	tr := randomTrace(t)

	plain, err := Marshal(tr)
	require.NoError(t, err)
	packed, err := Marshal(tr, WithCompression(CompressionZSTD))
	require.NoError(t, err)

	assert.Less(t, len(packed), len(plain))
}

func TestMarshal_DefaultCodec(t *testing.T) {
	data, err := Marshal(randomTrace(t), WithCodec(nil))
	require.NoError(t, err)

	h, _, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, codec.Default.Name(), h.Codec)
	assert.Equal(t, CompressionNone, h.Compression)
}

func TestMarshal_UnknownCompression(t *testing.T) {
	_, err := Marshal(randomTrace(t), WithCompression(Compression(9)))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestUnmarshal_Errors(t *testing.T) {
	valid, err := Marshal(randomTrace(t), WithCompression(CompressionLZ4))
	require.NoError(t, err)

	t.Run("BadMagic", func(t *testing.T) {
		_, _, err := Unmarshal([]byte("NOPE-----------"))
		assert.ErrorIs(t, err, ErrBadMagic)

		_, _, err = Unmarshal(nil)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := Unmarshal(valid[:6])
		assert.ErrorIs(t, err, ErrCorrupt)

		_, _, err = Unmarshal(valid[:len(valid)/2])
		assert.Error(t, err)
	})

	t.Run("Version", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[4] = Version + 1

		_, _, err := Unmarshal(data)
		var verr *ErrUnsupportedVersion
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, Version+1, verr.Version)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		nameLen := int(data[6])
		copy(data[7:7+nameLen], []byte("xxxxxxxxxxxxxxxx")[:nameLen])

		_, _, err := Unmarshal(data)
		assert.ErrorIs(t, err, codec.ErrUnknown)
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[5] = 7

		_, _, err := Unmarshal(data)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("OversizedRawLen", func(t *testing.T) {
		for _, c := range []Compression{CompressionNone, CompressionLZ4} {
			data := []byte(Magic)
			data = append(data, Version, byte(c), byte(len("json")))
			data = append(data, "json"...)
			data = binary.LittleEndian.AppendUint32(data, maxRawLen)
			data = binary.LittleEndian.AppendUint32(data, 0)
			data = append(data, 0x10, 0x41)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, _, err := Unmarshal(data)
			runtime.ReadMemStats(&after)

			assert.ErrorIs(t, err, ErrCorrupt, c.String())
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), c.String())
		}
	})

	t.Run("ZstdLengthMismatch", func(t *testing.T) {
		data, err := Marshal(randomTrace(t), WithCompression(CompressionZSTD))
		require.NoError(t, err)

		h, off, err := ReadHeader(data)
		require.NoError(t, err)
		binary.LittleEndian.PutUint32(data[off-8:], h.RawLen+1)

		_, _, err = Unmarshal(data)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Checksum", func(t *testing.T) {
		data, err := Marshal(randomTrace(t))
		require.NoError(t, err)

		_, off, err := ReadHeader(data)
		require.NoError(t, err)
		sum := binary.LittleEndian.Uint32(data[off-4:])
		binary.LittleEndian.PutUint32(data[off-4:], sum+1)

		_, _, err = Unmarshal(data)
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, got)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "Compression(9)", Compression(9).String())
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	want := randomTrace(t)

	for _, store := range []blobstore.BlobStore{blobstore.NewMemoryStore(), blobstore.NewLocalStore(t.TempDir())} {
		require.NoError(t, Save(ctx, store, "runs/1.kmtr", want, WithCompression(CompressionZSTD)))

		got, err := Load(ctx, store, "runs/1.kmtr")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		_, err = Load(ctx, store, "runs/missing.kmtr")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	}
}

func TestReplay(t *testing.T) {
	want := randomTrace(t)

	data, err := Marshal(want, WithCompression(CompressionLZ4))
	require.NoError(t, err)
	tr, _, err := Unmarshal(data)
	require.NoError(t, err)

	eng, err := Replay(context.Background(), tr)
	require.NoError(t, err)
	assert.True(t, eng.Converged())
	assert.Equal(t, want.Iterations(), eng.State().Iteration)
	assert.Equal(t, want.Steps[len(want.Steps)-1].Centroids, eng.Centroids())
}

func TestReplay_PinnedSeed(t *testing.T) {
	points, seeds := testutil.PinnedSeed()
	eng := kmeansviz.New()
	require.NoError(t, eng.Load(points, seeds))

	_, err := Replay(context.Background(), recordRun(t, eng))
	assert.NoError(t, err)
}

func TestReplay_Mismatch(t *testing.T) {
	tr := randomTrace(t)
	tr.Steps[3].Cluster = (tr.Steps[3].Cluster + 1) % tr.K

	_, err := Replay(context.Background(), tr)
	var mismatch *ErrMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Step)
	assert.Equal(t, "cluster", mismatch.Field)
}

func TestReplay_WrongK(t *testing.T) {
	tr := randomTrace(t)
	tr.K = 5

	_, err := Replay(context.Background(), tr)
	var mismatch *ErrMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "k", mismatch.Field)
}

func TestReplay_InvalidTrace(t *testing.T) {
	tr := randomTrace(t)
	tr.Seeds = []int{0, 0, 1, 2}

	_, err := Replay(context.Background(), tr)
	var seedErr *kmeansviz.ErrInvalidSeed
	assert.ErrorAs(t, err, &seedErr)
}

func TestReplay_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, err := Replay(ctx, randomTrace(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, eng.State().Cursor)
}
