package toml

import (
	"strings"
	"testing"
	"time"
)

type spawnEntry struct {
	Edge     string  `toml:"edge"`
	Position float64 `toml:"position"`
	Color    string  `toml:"color"`
}

type hostSection struct {
	Listen string `toml:"listen"`
	Mute   bool   `toml:"mute"`
}

type sample struct {
	Distance float64       `toml:"collide_distance"`
	Cooldown time.Duration `toml:"cooldown"`
	Max      int           `toml:"max_entities"`
	Reverse  bool          `toml:"reverse"`
	Mode     string        `toml:"locomotion"`
	Weights  [5]float64    `toml:"phase_weights"`
	Seed     uint64        `toml:"seed"`
	Ignored  string        `toml:"-"`
	Host     hostSection   `toml:"host"`
	Spawn    []spawnEntry  `toml:"spawn"`
}

// TestUnmarshalConfig verifies the full pipeline from source to tagged struct
func TestUnmarshalConfig(t *testing.T) {
	src := []byte(`
# crawler tuning
collide_distance = 42.5
cooldown = "300ms"
max_entities = 8 # inline comment
reverse = true
locomotion = 'weighted'
phase_weights = [0.1, 0.2,
  0.4, 0.2, 0.1]
seed = 1_234
unknown_key = "ignored"
Ignored = "still ignored"

[host]
listen = ":8080"
mute = true

[[spawn]]
edge = "bottom"
position = 60
color = "#E52A2A"

[[spawn]]
edge = "left"
position = 180.5
color = "#1E4FB7"
`)

	var s sample
	if err := Unmarshal(src, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if s.Distance != 42.5 || s.Cooldown != 300*time.Millisecond || s.Max != 8 || !s.Reverse {
		t.Errorf("scalars = %+v", s)
	}
	if s.Mode != "weighted" || s.Seed != 1234 || s.Ignored != "" {
		t.Errorf("mode %q seed %d ignored %q", s.Mode, s.Seed, s.Ignored)
	}
	if s.Weights != [5]float64{0.1, 0.2, 0.4, 0.2, 0.1} {
		t.Errorf("weights = %v", s.Weights)
	}
	if s.Host.Listen != ":8080" || !s.Host.Mute {
		t.Errorf("host = %+v", s.Host)
	}
	if len(s.Spawn) != 2 {
		t.Fatalf("spawn entries = %d, want 2", len(s.Spawn))
	}
	if s.Spawn[0] != (spawnEntry{"bottom", 60, "#E52A2A"}) || s.Spawn[1] != (spawnEntry{"left", 180.5, "#1E4FB7"}) {
		t.Errorf("spawn = %+v", s.Spawn)
	}
}

// TestDurationAsMilliseconds verifies bare numbers decode as milliseconds
func TestDurationAsMilliseconds(t *testing.T) {
	var s sample
	if err := Unmarshal([]byte("cooldown = 250\n"), &s); err != nil {
		t.Fatal(err)
	}
	if s.Cooldown != 250*time.Millisecond {
		t.Errorf("cooldown = %v", s.Cooldown)
	}
}

// TestParseErrors verifies malformed input reports a line
func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing equals":    "a 1",
		"duplicate key":     "a = 1\na = 2",
		"unterminated str":  `a = "x`,
		"bad value":         "a = nope",
		"unclosed header":   "[host\n",
		"unclosed array":    "a = [1, 2",
		"trailing garbage":  "a = 1 2",
		"table over scalar": "a = 1\n[a]\n",
		"bad escape":        `a = "\q"`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewParser([]byte(src)).Parse(); err == nil {
				t.Errorf("expected error for %q", src)
			} else if !strings.Contains(err.Error(), "line") {
				t.Errorf("error %q has no line", err)
			}
		})
	}
}

// TestDecodeTypeErrors verifies mismatched types are reported with their key path
func TestDecodeTypeErrors(t *testing.T) {
	cases := map[string]string{
		"string to float": `collide_distance = "far"`,
		"float to int":    "max_entities = 1.5",
		"short array":     "phase_weights = [1, 2]",
		"bad duration":    `cooldown = "soon"`,
		"nested":          "[host]\nmute = 1",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			var s sample
			if err := Unmarshal([]byte(src), &s); err == nil {
				t.Errorf("expected error for %q", src)
			}
		})
	}

	var s sample
	if err := Decode(map[string]any{}, s); err == nil {
		t.Error("non-pointer target accepted")
	}
}

// TestDottedKeysAndInlineTables verifies nested key forms
func TestDottedKeysAndInlineTables(t *testing.T) {
	tree, err := NewParser([]byte("host.listen = \":9\"\nextra = { a = 1, b.c = true }\n")).Parse()
	if err != nil {
		t.Fatal(err)
	}
	host, _ := tree["host"].(map[string]any)
	if host["listen"] != ":9" {
		t.Errorf("host = %v", tree["host"])
	}
	extra, _ := tree["extra"].(map[string]any)
	b, _ := extra["b"].(map[string]any)
	if extra["a"] != 1 || b["c"] != true {
		t.Errorf("extra = %v", extra)
	}
}

// TestMarshalRoundTrip verifies Marshal output reads back to the same struct
func TestMarshalRoundTrip(t *testing.T) {
	in := sample{
		Distance: 40,
		Cooldown: 280 * time.Millisecond,
		Max:      12,
		Mode:     "jump",
		Weights:  [5]float64{0.14, 0.22, 0.36, 0.14, 0.14},
		Seed:     9,
		Host:     hostSection{Listen: "127.0.0.1:7070"},
		Spawn:    []spawnEntry{{"bottom", 60, "#E52A2A"}, {"top", 0, "#BDC3C7"}},
	}
	data, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `cooldown = "280ms"`) || !strings.Contains(string(data), "[[spawn]]") {
		t.Errorf("unexpected output:\n%s", data)
	}

	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal of marshaled output: %v\n%s", err, data)
	}
	if out.Distance != in.Distance || out.Cooldown != in.Cooldown || out.Weights != in.Weights ||
		out.Host != in.Host || len(out.Spawn) != 2 || out.Spawn[1] != in.Spawn[1] {
		t.Errorf("round trip mismatch:\n in  %+v\n out %+v", in, out)
	}
}
