// FILE: lixenwraith/gameini/decode_test.go
package gameini

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnPoint struct {
	X int
	Y int
}

type serverSettings struct {
	Name    string             `ini:"ServerName"`
	Players int                `ini:"MaxPlayers"`
	Offset  float64            `ini:"DifficultyOffset"`
	PvP     bool               `ini:"EnablePvP"`
	Restart time.Duration      `ini:"RestartInterval"`
	Mods    []int              `ini:"ActiveMods"`
	Tags    []string           `ini:"Tags"`
	Bind    net.IP             `ini:"BindAddress"`
	Rates   map[string]float64 `ini:"Rates"`
	Levels  map[int]int        `ini:"Levels"`
	Spawn   spawnPoint         `ini:"Spawn"`
}

const decodeInput = `[Server]
ServerName=ARK Server
MaxPlayers=70
DifficultyOffset=0.5
EnablePvP=True
RestartInterval=6h
ActiveMods=111,222
Tags=pve
BindAddress=10.0.0.1
Rates[XP]=2.5
Rates[Harvest]=3
Levels[0]=5
Levels[1]=10
Spawn=(X=1, Y=-2)

[Rules]
Hardcore=false
`

// TestSectionDecode tests decoding a section into a struct
func TestSectionDecode(t *testing.T) {
	f, err := ParseString(decodeInput)
	require.NoError(t, err)
	s, err := f.Section("Server")
	require.NoError(t, err)

	var got serverSettings
	require.NoError(t, s.Decode(&got))

	assert.Equal(t, serverSettings{
		Name:    "ARK Server",
		Players: 70,
		Offset:  0.5,
		PvP:     true,
		Restart: 6 * time.Hour,
		Mods:    []int{111, 222},
		Tags:    []string{"pve"},
		Bind:    net.ParseIP("10.0.0.1"),
		Rates:   map[string]float64{"XP": 2.5, "Harvest": 3},
		Levels:  map[int]int{0: 5, 1: 10},
		Spawn:   spawnPoint{X: 1, Y: -2},
	}, got)
}

// TestFileDecode tests decoding every section by name
func TestFileDecode(t *testing.T) {
	f, err := ParseString(decodeInput)
	require.NoError(t, err)

	var cfg struct {
		Server serverSettings `ini:"Server"`
		Rules  struct {
			Hardcore bool
		} `ini:"Rules"`
	}
	require.NoError(t, f.Decode(&cfg))
	assert.Equal(t, 70, cfg.Server.Players)
	assert.False(t, cfg.Rules.Hardcore)
}

// TestDecodeErrors tests invalid targets and values
func TestDecodeErrors(t *testing.T) {
	s := NewSection("S")
	require.NoError(t, s.AddString("Addr", "not-an-ip"))

	var target struct {
		Addr net.IP
	}
	assert.Error(t, s.Decode(target))
	assert.Error(t, s.Decode(nil))

	err := s.Decode(&target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section S")
}

type encodedSettings struct {
	Name    string        `ini:"ServerName"`
	Players int           `ini:"MaxPlayers"`
	Rate    float64       `ini:"Rate"`
	Timeout time.Duration `ini:"Timeout"`
	Mods    []int         `ini:"Mods"`
	Spawn   spawnPoint    `ini:"Spawn"`
}

// TestSectionEncode tests writing a struct into a section and back
func TestSectionEncode(t *testing.T) {
	src := encodedSettings{
		Name:    "ARK",
		Players: 70,
		Rate:    2.5,
		Timeout: 90 * time.Second,
		Mods:    []int{1, 2},
		Spawn:   spawnPoint{X: 3, Y: 4},
	}

	s := NewSection("Server")
	require.NoError(t, s.Encode(src))
	assert.Equal(t, `[Server]
MaxPlayers=70
Mods=1,2
Rate=2.5
ServerName=ARK
Spawn=(X=3, Y=4)
Timeout=1m30s`, s.String())

	var back encodedSettings
	require.NoError(t, s.Decode(&back))
	assert.Equal(t, src, back)

	t.Run("KeepsExistingKinds", func(t *testing.T) {
		f, err := ParseString("[Server]\nMods=1\nMods=2\nServerName=old")
		require.NoError(t, err)
		sec, err := f.Section("Server")
		require.NoError(t, err)

		require.NoError(t, sec.Encode(src))
		kind, _ := sec.KeyKind("Mods")
		assert.Equal(t, EntryRepeatedArray, kind)
		assert.Equal(t, "ServerName", sec.Keys()[1])
	})

	t.Run("MismatchJoined", func(t *testing.T) {
		sec := NewSection("Server")
		require.NoError(t, sec.AddMap("Mods", NamedValue{Name: "a", Value: Int(1)}))
		require.NoError(t, sec.AddArray("Rate", Int(1)))

		err := sec.Encode(src)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTypeMismatch))

		// Other fields were still written
		players, err := sec.GetInt("MaxPlayers")
		require.NoError(t, err)
		assert.Equal(t, int32(70), players)
	})
}
