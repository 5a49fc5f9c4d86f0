//go:build unit || !integration

package layout

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf8"

	"eadkc/common"
	"eadkc/config"

	"github.com/stretchr/testify/require"
)

func iconOf(data []byte) *config.Icon {
	return &config.Icon{Path: "target/icon.nwi", Size: int64(len(data)), Data: data}
}

func TestBuildScenario(t *testing.T) {
	cfg := &config.BuildConfig{Name: "Hi", APILevel: 1}
	l := Build(cfg, iconOf([]byte{1, 2, 3, 4}))

	require.Equal(t, []byte{0x48, 0x69, 0x00}, l.AppName.Bytes)
	require.Equal(t, 3, l.AppName.Length)
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(l.APILevel.Bytes))
	require.Equal(t, 4, l.APILevel.Length)
	require.Equal(t, 4, l.AppIcon.Length)
	require.Equal(t, []byte{1, 2, 3, 4}, l.AppIcon.Bytes)
}

func TestNameBlock(t *testing.T) {
	names := []string{"", "Hi", "Calculatrice", "Grâce", "日本語", "with space"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			b := Build(&config.BuildConfig{Name: name}, iconOf(nil)).AppName

			require.True(t, utf8.Valid(b.Bytes[:len(b.Bytes)-1]))
			require.Equal(t, len([]byte(name))+1, b.Length)
			require.Len(t, b.Bytes, b.Length)
			require.Equal(t, byte(0), b.Bytes[len(b.Bytes)-1])
			require.Equal(t, name, string(b.Bytes[:len(b.Bytes)-1]))
			require.Equal(t, common.AppNameSection, b.Section)
			require.Equal(t, common.AppNameSymbol, b.Symbol)
		})
	}
}

func TestEmptyNameIsTerminated(t *testing.T) {
	require.Equal(t, []byte{0}, NameBytes(""))
}

func TestAPILevelRoundTrip(t *testing.T) {
	levels := []uint32{0, 1, 0xff, 0x100, 0x12345678, 0xffffffff}

	for _, level := range levels {
		b := Build(&config.BuildConfig{APILevel: level}, iconOf(nil)).APILevel

		require.Equal(t, 4, b.Length)
		require.Equal(t, level, binary.LittleEndian.Uint32(b.Bytes))
		require.Equal(t, common.APILevelSection, b.Section)
	}

	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, APILevelBytes(0x12345678))
}

func TestIconBlock(t *testing.T) {
	data := bytes.Repeat([]byte{0xab, 0x00, 0xcd}, 1000)
	icon := iconOf(data)

	b := Build(&config.BuildConfig{}, icon).AppIcon
	require.Equal(t, len(data), b.Length)
	require.Equal(t, data, b.Bytes)
	require.Equal(t, common.AppIconSection, b.Section)

	// the block does not alias the resolver's buffer
	icon.Data[0] = 0
	require.Equal(t, byte(0xab), b.Bytes[0])
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := &config.BuildConfig{Name: "App", APILevel: 7}
	icon := iconOf([]byte("icon"))

	first := Build(cfg, icon)
	second := Build(cfg, icon)
	require.Equal(t, first, second)

	blocks := first.Blocks()
	require.Len(t, blocks, 3)
	require.Equal(t, KindAppName, blocks[0].Kind)
	require.Equal(t, KindAPILevel, blocks[1].Kind)
	require.Equal(t, KindAppIcon, blocks[2].Kind)
}

func TestBlockString(t *testing.T) {
	b := Build(&config.BuildConfig{Name: "Hi"}, iconOf(nil)).AppName
	require.Contains(t, b.String(), common.AppNameSymbol)
	require.Contains(t, b.String(), common.AppNameSection)
}
