package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"animation json", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestContentID(t *testing.T) {
	require.Equal(t, "ef46db3751d8e999", ContentID(nil))
	require.Equal(t, "4fdcca5ddb678139", ContentID([]byte("test")))
	require.Len(t, ContentID([]byte(`{"name":"wave"}`)), ContentIDLen)
	require.NotEqual(t, ContentID([]byte(`{"name":"wave"}`)), ContentID([]byte(`{"name":"wave2"}`)))
}

func TestFormatID(t *testing.T) {
	require.Equal(t, "0000000000000000", FormatID(0))
	require.Equal(t, "00000000000000ff", FormatID(0xff))
	require.Equal(t, "ffffffffffffffff", FormatID(^uint64(0)))
}

func BenchmarkContentID(b *testing.B) {
	data := []byte(`{"name":"idle","loop":"loop","length":2.5,"animators":{}}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ContentID(data)
	}
}
